package extractor

import (
	"github.com/nfu-tools/nfu-announcements/internal/announcement"
	"github.com/nfu-tools/nfu-announcements/internal/site"
)

// Reason explains the outcome of an extraction.
type Reason int

const (
	// ReasonOK means at least one item was extracted.
	ReasonOK Reason = iota
	// ReasonNoContainer means the parent selector matched nothing.
	ReasonNoContainer
	// ReasonNoItems means the article selector matched nothing inside the container.
	ReasonNoItems
	// ReasonEmpty means items matched but none survived truncation and the
	// title check.
	ReasonEmpty
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNoContainer:
		return "container not found"
	case ReasonNoItems:
		return "items not found"
	case ReasonEmpty:
		return "no items after filtering"
	default:
		return "unknown"
	}
}

// Result is what Extract found on one page.
type Result struct {
	Items  []announcement.Item
	Reason Reason
	// Selector is the selector that failed for ReasonNoContainer and
	// ReasonNoItems.
	Selector string
	// Matched is the number of nodes the article selector found.
	Matched int
	// Skipped counts items dropped for having no title element.
	Skipped int
}

// Extract walks root using the selectors in cfg. At most cfg.MaxItems item
// nodes are considered, taken in document order; items without a title
// element are skipped and items without a date get the placeholder.
func Extract(root Node, cfg site.Config) Result {
	container, ok := root.SelectOne(cfg.ParentSelector)
	if !ok {
		return Result{Reason: ReasonNoContainer, Selector: cfg.ParentSelector}
	}

	nodes := container.SelectAll(cfg.ArticleSelector)
	if len(nodes) == 0 {
		return Result{Reason: ReasonNoItems, Selector: cfg.ArticleSelector}
	}

	result := Result{Matched: len(nodes)}
	if len(nodes) > cfg.MaxItems {
		nodes = nodes[:cfg.MaxItems]
	}

	items := make([]announcement.Item, 0, len(nodes))
	for _, node := range nodes {
		titleNode, ok := node.SelectOne(cfg.TitleSelector)
		if !ok {
			result.Skipped++
			continue
		}
		link, hasLink := titleNode.Attr("href")

		var date string
		dateNode, hasDate := node.SelectOne(cfg.DateSelector)
		if hasDate {
			date = dateNode.Text()
		}

		items = append(items, announcement.New(cfg.DomainName, titleNode.Text(), link, hasLink, date, hasDate))
	}

	result.Items = items
	if len(items) == 0 {
		result.Reason = ReasonEmpty
	}
	return result
}

// ExtractHTML parses html and runs Extract on it.
func ExtractHTML(html string, cfg site.Config) (Result, error) {
	root, err := Parse(html)
	if err != nil {
		return Result{}, err
	}
	return Extract(root, cfg), nil
}
