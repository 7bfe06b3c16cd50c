package league

import (
	"sort"
	"strings"
	"unicode"
)

// NameMatch is a player whose name resembles a search query.
type NameMatch struct {
	Player     Player   `json:"player"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// ConfidentMatch is the confidence above which a name search picks a player
// without asking.
const ConfidentMatch = 0.8

const (
	minMatchConfidence = 0.3
	maxMatches         = 5
)

// FindPlayersByName ranks players by how closely their name matches query,
// best first. At most five matches above a minimum confidence are returned.
func FindPlayersByName(players []Player, query string) []NameMatch {
	normalizedQuery := normalizeName(query)
	if normalizedQuery == "" {
		return nil
	}

	var matches []NameMatch
	for _, player := range players {
		normalizedName := normalizeName(player.Name)
		score := nameSimilarity(normalizedQuery, normalizedName)
		if score > minMatchConfidence {
			matches = append(matches, NameMatch{
				Player:     player,
				Confidence: score,
				Reasons:    matchReasons(normalizedQuery, normalizedName),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}

// nameSimilarity averages whole-string and per-word similarity.
func nameSimilarity(query, name string) float64 {
	if query == name {
		return 1.0
	}
	return (stringSimilarity(query, name) + tokenSimilarity(query, name)) / 2
}

// normalizeName lowercases, keeps letters, digits and single spaces.
func normalizeName(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	if len(r1) == 0 || len(r2) == 0 {
		return 0.0
	}
	return 1.0 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of words in the longer name that have a close
// counterpart in the other.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1 := strings.Fields(s1)
	tokens2 := strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	var matchCount int
	for _, token1 := range tokens1 {
		for _, token2 := range tokens2 {
			if stringSimilarity(token1, token2) > ConfidentMatch {
				matchCount++
				break
			}
		}
	}
	return float64(matchCount) / float64(max(len(tokens1), len(tokens2)))
}

func levenshteinDistance(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

func matchReasons(query, name string) []string {
	var reasons []string
	switch {
	case query == name:
		reasons = append(reasons, "Exact name match")
	case stringSimilarity(query, name) > ConfidentMatch:
		reasons = append(reasons, "Very similar name")
	}
	if tokenSimilarity(query, name) > 0.5 {
		reasons = append(reasons, "Matching name components")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Partial name similarity")
	}
	return reasons
}
