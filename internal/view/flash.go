package view

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// flashDismissMillis is how long a toast stays up. The layout script
// reads it from data-auto-dismiss.
const flashDismissMillis = 3000

// Flash is a toast shown once, after the response that produced it.
type Flash struct {
	Level   string
	Message string
}

// RenderFlashesOOB appends flashes to #toasts with an out-of-band swap.
// It returns "" when there is nothing to show.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div id="toasts" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		fmt.Fprintf(&sb, `<div class="toast toast-%s" data-auto-dismiss="%d">%s</div>`,
			html.EscapeString(f.Level), flashDismissMillis, html.EscapeString(f.Message))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer is the target of every flash swap. The layout renders it once.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="toasts" class="toast-container"></div>`)
		return err
	})
}
