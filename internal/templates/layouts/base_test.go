package layouts

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/codr1/accresults/internal/api/flash"
)

func TestBaseRendersNoticeAndContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})

	var buf bytes.Buffer
	err := Base("Teams <list>", content, &flash.Message{Level: flash.LevelError, Text: "<b>nope</b>"}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Teams &lt;list&gt;</title>",
		`class="notice notice-error"`,
		"&lt;b&gt;nope&lt;/b&gt;",
		"<p>body</p>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}
