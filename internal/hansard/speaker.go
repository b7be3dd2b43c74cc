package hansard

import (
	"regexp"
	"strings"
)

var (
	personNameRegex   = regexp.MustCompile(`(?i)^(Hon\.|Sen\.)\s(Dr\.\s)?`)
	roleTitleRegex    = regexp.MustCompile(`(?i)^(The\s)?(Ayes|Noes|Teller|Temporary Speaker|Speaker|Chairperson|Majority Leader|Minority Leader|Majority Whip|Minority Whip)`)
	constituencyRegex = regexp.MustCompile(`^[^,]+,\s*.+`)
	nameInParensRegex = regexp.MustCompile(`^(.+?)\s*\((.+?)\)$`)
)

func looksLikePerson(s string) bool {
	return personNameRegex.MatchString(s)
}

func looksLikeRole(s string) bool {
	return roleTitleRegex.MatchString(s)
}

// ResolveSpeaker fixes up the speaker name and role of a contribution, transcripts
// alternate between "name (role)" and "role (name)" and sometimes put both in the
// name. An empty role means no role was captured.
//
// The rules are tried in order and the first one that matches wins:
//  1. name is shaped like "constituency, party" and role is a person: swap.
//  2. role is a person and name is a title: swap.
//  3. there is no role and name is "title (person)": split.
//
// Anything else is returned unchanged.
func ResolveSpeaker(name, role string) (string, string) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)

	if role != "" &&
		constituencyRegex.MatchString(name) &&
		!looksLikePerson(name) &&
		looksLikePerson(role) {
		return role, name
	}

	if role != "" && looksLikePerson(role) && looksLikeRole(name) {
		return role, name
	}

	if role == "" {
		groups := nameInParensRegex.FindStringSubmatch(name)
		if groups != nil {
			title := strings.TrimSpace(groups[1])
			person := strings.TrimSpace(groups[2])
			if looksLikePerson(person) && looksLikeRole(title) {
				return person, title
			}
		}
	}

	return name, role
}
