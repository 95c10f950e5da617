package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
)

// Links returns the href attribute of every anchor element in the HTML,
// in document order. Hrefs are returned as written in the markup; URL
// resolution and scope filtering are the caller's concern.
func (e *Extractor) Links(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})

	return hrefs, nil
}
