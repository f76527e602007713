package services

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// RodRenderer prints HTML to an A4 PDF with a headless Chrome.
type RodRenderer struct {
	Bin string // empty: let rod find or download a browser
}

const mmPerInch = 25.4

func inches(mm float64) *float64 {
	v := mm / mmPerInch
	return &v
}

func (r *RodRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	l := launcher.New().Headless(true).NoSandbox(true)
	if r.Bin != "" {
		l = l.Bin(r.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      inches(210),
		PaperHeight:     inches(297),
		MarginTop:       inches(10),
		MarginBottom:    inches(10),
		MarginLeft:      inches(10),
		MarginRight:     inches(10),
	})
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return io.ReadAll(stream)
}
