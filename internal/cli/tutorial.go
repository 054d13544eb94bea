package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/superdense/pkg/domain"
)

// WriteTutorial renders the explainer and the encoding table through render.
func WriteTutorial(w io.Writer, render func(string) (string, error)) error {
	md := domain.TutorialMarkdown() + "\n" + domain.EncodingTableMarkdown()
	out, err := render(md)
	if err != nil {
		out = md
	}
	_, err = fmt.Fprint(w, out)
	return err
}
