package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
)

func MeasureTime(ctx context.Context, name string, start time.Time) {
	elapsed := time.Since(start)
	goapp.Log.Info().Str("id", RequestID(ctx)).Str("elapsed", fmt.Sprintf("%v", elapsed)).Str("func", name).Msg("time")
}
