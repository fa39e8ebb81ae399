// internal/browser/conditions.go
package browser

import (
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page is the part of *rod.Page the conditions need.
type Page interface {
	Has(selector string) (bool, *rod.Element, error)
	Info() (*proto.TargetTargetInfo, error)
}

var _ Page = (*rod.Page)(nil)

// isVisible is swapped in tests; it needs a live element otherwise.
var isVisible = (*rod.Element).Visible

// ElementPresent yields the first element matching selector.
// A missing element is a no_such_element error, never an implicit wait.
func ElementPresent(p Page, selector string) func() (*rod.Element, error) {
	return func() (*rod.Element, error) {
		has, el, err := p.Has(selector)
		if err != nil {
			return nil, Classify(err)
		}
		if !has || el == nil {
			return nil, Classify(&rod.ElementNotFoundError{})
		}
		return el, nil
	}
}

// ElementVisible yields the element once it is present and visible.
// A present but hidden element is simply not yet satisfied.
func ElementVisible(p Page, selector string) func() (*rod.Element, error) {
	present := ElementPresent(p, selector)
	return func() (*rod.Element, error) {
		el, err := present()
		if err != nil {
			return nil, err
		}
		ok, err := isVisible(el)
		if err != nil {
			return nil, Classify(err)
		}
		if !ok {
			return nil, nil
		}
		return el, nil
	}
}

// TitleContains is satisfied when the page title contains substr.
func TitleContains(p Page, substr string) func() (bool, error) {
	return func() (bool, error) {
		info, err := p.Info()
		if err != nil {
			return false, Classify(err)
		}
		return strings.Contains(info.Title, substr), nil
	}
}
