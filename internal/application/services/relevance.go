package services

import (
	"math"
	"strings"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

// Event scoring weights
const (
	eventInterestWeight = 0.45
	eventKeywordWeight  = 0.30
	eventLocalityWeight = 0.25
)

// User scoring weights
const (
	userInterestWeight   = 0.6
	userExperienceWeight = 0.4
)

// communityEventTarget is the matching-event count at which a community
// scores the maximum 1.0.
const communityEventTarget = 5

// Reason strings attached to scored candidates. Assignment is
// priority-ordered and first-match-wins; a candidate carries exactly one.
const (
	reasonInterests       = "Matches your interests"
	reasonKeyword         = "Keyword match"
	reasonNearby          = "Near you"
	reasonSharedInterests = "Shared interests"
	reasonExperience      = "Experience match"
	reasonActiveEvents    = "Active events"
	reasonCommunityMatch  = "Community match"
	reasonFallback        = "Relevant"
)

// scoreEvent computes the weighted relevance of an event for the requester.
// A nil user context zeroes the interest and locality terms.
func scoreEvent(event *entities.Event, keywords []string, userCtx *entities.UserContext) (float64, string) {
	var interestTerm float64
	if userCtx != nil && len(userCtx.Interests) > 0 {
		levels := make(map[string]int, len(userCtx.Interests))
		for _, interest := range userCtx.Interests {
			levels[interest.CategoryID] = interest.Level
		}

		sum := 0
		for _, categoryID := range event.CategoryIDs {
			sum += levels[categoryID]
		}

		norm := math.Max(10, float64(len(levels))*10)
		interestTerm = math.Min(1, float64(sum)/norm)
	}

	var keywordTerm float64
	if len(keywords) > 0 {
		title := strings.ToLower(event.Title)
		matched := 0
		for _, keyword := range keywords {
			if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
				matched++
			}
		}
		keywordTerm = float64(matched) / float64(len(keywords))
	}

	var localityTerm float64
	if userCtx != nil && userCtx.LocationID != "" && event.LocationID == userCtx.LocationID {
		localityTerm = 1
	}

	score := eventInterestWeight*interestTerm +
		eventKeywordWeight*keywordTerm +
		eventLocalityWeight*localityTerm

	reason := reasonFallback
	switch {
	case interestTerm > 0:
		reason = reasonInterests
	case keywordTerm > 0:
		reason = reasonKeyword
	case localityTerm > 0:
		reason = reasonNearby
	}

	return clampScore(score), reason
}

// scoreUser computes interest overlap against the resolved interest
// identifiers plus an all-or-nothing experience-level match.
func scoreUser(user *entities.User, interestIDs []string, experienceLevels []string) (float64, string) {
	var interestTerm float64
	if len(interestIDs) > 0 {
		wanted := make(map[string]struct{}, len(interestIDs))
		for _, id := range interestIDs {
			wanted[id] = struct{}{}
		}

		overlap := 0
		for _, id := range user.InterestCategoryIDs {
			if _, ok := wanted[id]; ok {
				overlap++
			}
		}
		interestTerm = math.Min(1, float64(overlap)/float64(len(interestIDs)))
	}

	var experienceTerm float64
	for _, level := range experienceLevels {
		if user.ExperienceLevel == level {
			experienceTerm = 1
			break
		}
	}

	score := userInterestWeight*interestTerm + userExperienceWeight*experienceTerm

	reason := reasonFallback
	switch {
	case interestTerm > 0:
		reason = reasonSharedInterests
	case experienceTerm > 0:
		reason = reasonExperience
	}

	return clampScore(score), reason
}

// scoreCommunity scores linearly in matching published events, capped at
// the target count.
func scoreCommunity(matchingEvents int) (float64, string) {
	score := math.Min(1, float64(matchingEvents)/float64(communityEventTarget))

	reason := reasonCommunityMatch
	if matchingEvents > 0 {
		reason = reasonActiveEvents
	}

	return clampScore(score), reason
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
