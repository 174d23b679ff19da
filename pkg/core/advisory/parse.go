package advisory

import (
	"errors"
	"strings"

	"poasmaster/pkg/core/utils"

	"github.com/PuerkitoBio/goquery"
)

var ErrEmptyAdvice = errors.New("EMPTY_ADVICE")

const (
	markerDiagnosis = "🚀"
	markerActions   = "🎯"
	markerScaling   = "💡"
)

var sectionMarkers = []string{markerDiagnosis, markerActions, markerScaling}

var bulletMarkers = []string{"•", "◦", "▪"}

// Section is one titled block of the advice.
type Section struct {
	Icon       string   `json:"icon,omitempty"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Items      []string `json:"items,omitempty"`
}

// Advice is a model reply in raw, rendered and sectioned form.
type Advice struct {
	Raw      string    `json:"raw"`
	HTML     string    `json:"html"`
	Sections []Section `json:"sections"`
}

// ParseAdvice renders markdown advice to HTML and splits it into sections.
// A section starts at a heading, or at a paragraph line that opens with one of
// the section emojis or consists only of bold text. "•" lines become items.
func ParseAdvice(markdown string) (*Advice, error) {
	cleaned := utils.CleanMarkdown(markdown)
	if !utils.ValidateMarkdown(cleaned) {
		return nil, ErrEmptyAdvice
	}

	html, err := utils.RenderMarkdown(cleaned)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	advice := &Advice{Raw: cleaned, HTML: html, Sections: []Section{}}
	open := func(icon, title string) {
		advice.Sections = append(advice.Sections, Section{Icon: icon, Title: title})
	}
	// current returns the section being filled, opening an untitled one for
	// text that precedes the first heading.
	current := func() *Section {
		if len(advice.Sections) == 0 {
			open("", "")
		}
		return &advice.Sections[len(advice.Sections)-1]
	}

	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			icon, title := splitIcon(strings.TrimSpace(s.Text()))
			open(icon, title)
		case "ul", "ol":
			sec := current()
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				if item := collapse(li.Text()); item != "" {
					sec.Items = append(sec.Items, item)
				}
			})
		case "hr":
		case "p":
			strongs := s.Find("strong").Map(func(_ int, b *goquery.Selection) string {
				return collapse(b.Text())
			})
			var pending []string
			flush := func() {
				if len(pending) > 0 {
					sec := current()
					sec.Paragraphs = append(sec.Paragraphs, strings.Join(pending, " "))
					pending = nil
				}
			}
			for _, line := range strings.Split(s.Text(), "\n") {
				line = collapse(line)
				if line == "" {
					continue
				}
				if item, ok := bulletItem(line); ok {
					flush()
					sec := current()
					sec.Items = append(sec.Items, item)
					continue
				}
				if icon, title, rest, ok := lineHeading(line, strongs); ok {
					flush()
					open(icon, title)
					if rest != "" {
						pending = append(pending, rest)
					}
					continue
				}
				pending = append(pending, line)
			}
			flush()
		default:
			if text := collapse(s.Text()); text != "" {
				sec := current()
				sec.Paragraphs = append(sec.Paragraphs, text)
			}
		}
	})

	return advice, nil
}

// lineHeading detects "🚀 Title" and "🚀 **Title**" lines. Text following a
// bold title on the same line is returned as rest. A bold lead-in without an
// icon only counts as a title when nothing follows it.
func lineHeading(line string, strongs []string) (icon, title, rest string, ok bool) {
	icon, body := splitIcon(line)
	for _, strong := range strongs {
		if strong == "" || !strings.HasPrefix(body, strong) {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(body, strong), ":"))
		if icon == "" && rest != "" {
			return "", "", "", false
		}
		return icon, strings.TrimSuffix(strong, ":"), rest, true
	}
	if icon != "" {
		return icon, body, "", true
	}
	return "", "", "", false
}

// bulletItem reports whether line is a "•" style bullet, which markdown
// leaves inside the surrounding paragraph.
func bulletItem(line string) (string, bool) {
	for _, b := range bulletMarkers {
		if strings.HasPrefix(line, b) {
			return strings.TrimSpace(strings.TrimPrefix(line, b)), true
		}
	}
	return "", false
}

func splitIcon(text string) (icon, rest string) {
	for _, m := range sectionMarkers {
		if strings.HasPrefix(text, m) {
			return m, strings.TrimSpace(strings.TrimPrefix(text, m))
		}
	}
	return "", text
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
