// Package personalize declares which parts of a documentation page a client
// sees, given its detected environment.
package personalize

import (
	"fmt"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/models"
)

// HiddenStyle is the inline style applied to sections for other platforms.
const HiddenStyle = "display: none;"

// ActionKind enumerates the mutations a rule can apply.
type ActionKind int

const (
	ActionSetAttribute ActionKind = iota
	ActionHide
	ActionRemove
	// ActionActivateBadge marks the element active when its data-os
	// attribute equals Value.
	ActionActivateBadge
)

// Action is a single element mutation.
type Action struct {
	Kind  ActionKind
	Name  string
	Value string
}

func SetAttribute(name, value string) Action {
	return Action{Kind: ActionSetAttribute, Name: name, Value: value}
}

func Hide() Action {
	return Action{Kind: ActionHide}
}

func Remove() Action {
	return Action{Kind: ActionRemove}
}

func ActivateBadge(os environment.OS) Action {
	return Action{Kind: ActionActivateBadge, Value: string(os)}
}

// Rule applies Action to elements matching Selector when When reports true
// for the detected OS. A nil When always applies.
type Rule struct {
	Selector string
	When     func(environment.OS) bool
	Action   Action
}

// Applies reports whether r is active for os.
func (r Rule) Applies(os environment.OS) bool {
	return r.When == nil || r.When(os)
}

// Meta tags the visible-indicator policies populate.
const (
	MetaUserOS      = "user-os"
	MetaUserBrowser = "user-browser"
	MetaUserCountry = "user-country"
)

// Policy selects which rule families are generated for a page.
type Policy struct {
	Name string
	// Meta lists the meta tag names that receive detection results.
	Meta []string
	// HighlightBadges toggles the active class on the matching .os-badge.
	HighlightBadges bool
	// RemoveIndicators drops non-matching badges inside .os-indicator.
	RemoveIndicators bool
	// MobileAliases shows mac sections to ios and linux sections to android.
	MobileAliases bool
}

var (
	// Silent only filters content and never exposes detection results.
	Silent = Policy{Name: "silent"}

	// Indicator is used for the primary documentation page.
	Indicator = Policy{
		Name:             "indicator",
		Meta:             []string{MetaUserOS, MetaUserBrowser, MetaUserCountry},
		HighlightBadges:  true,
		RemoveIndicators: true,
	}

	// Demo is used for the remote demo page.
	Demo = Policy{
		Name:             "demo",
		Meta:             []string{MetaUserOS},
		RemoveIndicators: true,
		MobileAliases:    true,
	}
)

// ParsePolicy returns the named policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case Silent.Name:
		return Silent, nil
	case Indicator.Name, "":
		return Indicator, nil
	case Demo.Name:
		return Demo, nil
	}
	return Policy{}, fmt.Errorf("unknown personalization policy %q", name)
}

// sectionTargets are the OS groups that carry their own content sections.
var sectionTargets = []environment.OS{environment.OSMac, environment.OSWindows, environment.OSLinux}

// Matches reports whether content written for target should be shown to a
// client running os.
func (p Policy) Matches(target, os environment.OS) bool {
	if os == target {
		return true
	}
	if !p.MobileAliases {
		return false
	}
	return (target == environment.OSMac && os == environment.OSIOS) ||
		(target == environment.OSLinux && os == environment.OSAndroid)
}

func (p Policy) mismatch(target environment.OS) func(environment.OS) bool {
	return func(os environment.OS) bool { return !p.Matches(target, os) }
}

// Rules returns the ordered rule list for env under p. Where two rules touch
// the same element the later one wins, and removal always wins.
func Rules(p Policy, env models.Environment) []Rule {
	var rules []Rule

	for _, name := range p.Meta {
		rules = append(rules, Rule{
			Selector: fmt.Sprintf(`meta[name=%q]`, name),
			Action:   SetAttribute("content", metaValue(name, env)),
		})
	}

	for _, target := range sectionTargets {
		rules = append(rules, Rule{
			Selector: ".os-" + string(target),
			When:     p.mismatch(target),
			Action:   Hide(),
		})
	}

	if p.HighlightBadges {
		rules = append(rules, Rule{
			Selector: ".os-badge",
			Action:   ActivateBadge(env.OS),
		})
	}

	if p.RemoveIndicators {
		for _, target := range sectionTargets {
			rules = append(rules, Rule{
				Selector: ".os-indicator .os-" + string(target),
				When:     p.mismatch(target),
				Action:   Remove(),
			})
		}
	}

	return rules
}

func metaValue(name string, env models.Environment) string {
	switch name {
	case MetaUserOS:
		return string(env.OS)
	case MetaUserBrowser:
		return string(env.Browser)
	case MetaUserCountry:
		return env.Location.Country
	default:
		return ""
	}
}
