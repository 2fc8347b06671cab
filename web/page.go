package web

import (
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// Page is one of the site's top-level views.
type Page int

const (
	PageHome Page = iota
	PageDataset
	PageVisualization
	PagePredict
	PageAlgorithm
)

type pageInfo struct {
	slug  string
	path  string
	title string
	file  string
}

var pages = [...]pageInfo{
	PageHome:          {"home", "/", "Home", "home.html"},
	PageDataset:       {"dataset", "/dataset", "Dataset", "dataset.html"},
	PageVisualization: {"visualization", "/visualization", "Visualization", "visualization.html"},
	PagePredict:       {"predict", "/predict", "Predict", "predict.html"},
	PageAlgorithm:     {"algorithm", "/algorithm", "Algorithm", "algorithm.html"},
}

// Pages returns every page in navigation order.
func Pages() []Page {
	return []Page{PageHome, PageDataset, PageVisualization, PagePredict, PageAlgorithm}
}

func (p Page) valid() bool { return p >= 0 && int(p) < len(pages) }

func (p Page) String() string {
	if !p.valid() {
		return "unknown"
	}
	return pages[p].slug
}

// Path is the URL path the page is served at.
func (p Page) Path() string {
	if !p.valid() {
		return "/"
	}
	return pages[p].path
}

// Title is the navigation label.
func (p Page) Title() string {
	if !p.valid() {
		return ""
	}
	return pages[p].title
}

// ParsePage maps a slug ("home", "dataset", ...) to a Page.
func ParsePage(s string) (Page, error) {
	for i, info := range pages {
		if info.slug == s {
			return Page(i), nil
		}
	}
	return 0, errors.NewValidationError("page", "unknown page", s)
}
