package transcript

import (
	"testing"

	"github.com/airenas/transcript-fetcher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr error
	}{
		{name: "two lines",
			data: `<timedtext><body><p>Hello</p><p>World</p></body></timedtext>`,
			want: "Hello\nWorld\n"},
		{name: "xml header",
			data: `<?xml version="1.0" encoding="utf-8" ?><timedtext format="3"><body><p t="0" d="10">Hello</p></body></timedtext>`,
			want: "Hello\n"},
		{name: "latin1 header",
			data: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><t><body><p>ma\xf1ana</p></body></t>",
			want: "mañana\n"},
		{name: "bom",
			data: "\xef\xbb\xbf<t><body><p>Hello</p></body></t>",
			want: "Hello\n"},
		{name: "bom and xml header",
			data: "\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"utf-8\"?><t><body><p>Hello</p></body></t>",
			want: "Hello\n"},
		{name: "doctype entity",
			data: `<!DOCTYPE t [<!ENTITY x "ent"><!ENTITY y 'why'>]><t><body><p>&x; &y;</p></body></t>`,
			want: "ent why\n"},
		{name: "doctype without subset",
			data: `<!DOCTYPE t><t><body><p>a</p></body></t>`,
			want: "a\n"},
		{name: "entities",
			data: `<t><body><p>a &amp; b &lt;c&gt; &#39;d&#39;</p></body></t>`,
			want: "a & b <c> 'd'\n"},
		{name: "cdata",
			data: `<t><body><p><![CDATA[x < y]]></p></body></t>`,
			want: "x < y\n"},
		{name: "only direct text",
			data: `<t><body><p>start<s>inner</s>tail</p></body></t>`,
			want: "start\n"},
		{name: "no direct text",
			data: `<t><body><p><s>inner</s></p><p>ok</p></body></t>`,
			want: "ok\n"},
		{name: "empty p skipped",
			data: `<t><body><p></p><p/><p>x</p></body></t>`,
			want: "x\n"},
		{name: "whitespace kept",
			data: `<t><body><p> x </p></body></t>`,
			want: " x \n"},
		{name: "several bodies",
			data: `<t><body><p>a</p></body><head><p>skip</p></head><body><p>b</p></body></t>`,
			want: "a\nb\n"},
		{name: "nested body ignored",
			data: `<t><div><body><p>skip</p></body></div></t>`,
			want: ""},
		{name: "nested p ignored",
			data: `<t><body><div><p>skip</p></div></body></t>`,
			want: ""},
		{name: "root body not matched",
			data: `<body><p>skip</p></body>`,
			want: ""},
		{name: "namespaced body ignored",
			data: `<t xmlns="urn:x"><body><p>skip</p></body></t>`,
			want: ""},
		{name: "body without p",
			data: `<t><body></body></t>`,
			want: ""},
		{name: "no body",
			data: `<t><p>skip</p></t>`,
			want: ""},
		{name: "comment inside p",
			data: `<t><body><p>a<!-- c -->b</p></body></t>`,
			want: "ab\n"},
		{name: "unclosed", data: `<t><body><p>Hello</body></t>`, wantErr: domain.ErrBadDocument},
		{name: "truncated", data: `<t><body><p>Hello</p>`, wantErr: domain.ErrBadDocument},
		{name: "empty", data: ``, wantErr: domain.ErrBadDocument},
		{name: "not xml", data: `just text`, wantErr: domain.ErrBadDocument},
		{name: "two roots", data: `<a/><b/>`, wantErr: domain.ErrBadDocument},
		{name: "undeclared entity", data: `<!DOCTYPE t [<!ENTITY x "ent">]><t><body><p>&z;</p></body></t>`, wantErr: domain.ErrBadDocument},
		{name: "html entity", data: `<t><body><p>a&nbsp;b</p></body></t>`, wantErr: domain.ErrBadDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
