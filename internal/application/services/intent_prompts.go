package services

import (
	"encoding/json"
	"fmt"
)

const intentSystemPrompt = `You convert a natural-language search query from an event discovery platform into structured search filters. Return ONLY valid JSON with this schema:
{
  "primary_type": one of "events", "users", "communities", "mixed" (best guess at what the user is looking for),
  "keywords": string[] (terms extracted from the query, in order, may be empty),
  "event_filters": {
    "categories": string[] (event category names),
    "price": { "max": non-negative integer, omit when no budget mentioned },
    "location": string (free-text place name, omit when absent),
    "date_range": { "start": ISO date, "end": ISO date, omit absent sides },
    "online": boolean (only when the query says online/in-person)
  },
  "user_filters": {
    "professions": string[],
    "experience_levels": string[] (from: JUNIOR, MID, SENIOR, EXECUTIVE),
    "interests": string[] (interest category names),
    "location": string (omit when absent)
  },
  "community_filters": {
    "topics": string[],
    "location": string (omit when absent),
    "is_public": boolean (only when the query asks for open/public groups)
  },
  "summary": {
    "interpretation": string (one sentence explaining how the query was understood),
    "extracted": { "location": string, "date_range": {...}, "budget": integer, all optional },
    "suggestions": string[] (2-3 follow-up queries the user might try next)
  }
}
Extract only what the query states. Do not fabricate personal details, names, or attributes that are not in the query. Keep the interpretation short and plain.`

func buildIntentUserPrompt(query string) string {
	return fmt.Sprintf("Search query: %s\n", query)
}

// intentOutputSchema constrains the model response to the SearchIntent
// shape. Optional fields stay optional; normalization fills the defaults.
var intentOutputSchema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "required": ["primary_type", "keywords", "summary"],
  "properties": {
    "primary_type": {"type": "string", "enum": ["events", "users", "communities", "mixed"]},
    "keywords": {"type": "array", "items": {"type": "string"}},
    "event_filters": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "categories": {"type": "array", "items": {"type": "string"}},
        "price": {
          "type": "object",
          "additionalProperties": false,
          "properties": {"max": {"type": "integer", "minimum": 0}}
        },
        "location": {"type": "string"},
        "date_range": {
          "type": "object",
          "additionalProperties": false,
          "properties": {"start": {"type": "string"}, "end": {"type": "string"}}
        },
        "online": {"type": "boolean"}
      }
    },
    "user_filters": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "professions": {"type": "array", "items": {"type": "string"}},
        "experience_levels": {
          "type": "array",
          "items": {"type": "string", "enum": ["JUNIOR", "MID", "SENIOR", "EXECUTIVE"]}
        },
        "interests": {"type": "array", "items": {"type": "string"}},
        "location": {"type": "string"}
      }
    },
    "community_filters": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "topics": {"type": "array", "items": {"type": "string"}},
        "location": {"type": "string"},
        "is_public": {"type": "boolean"}
      }
    },
    "summary": {
      "type": "object",
      "additionalProperties": false,
      "required": ["interpretation"],
      "properties": {
        "interpretation": {"type": "string"},
        "extracted": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "location": {"type": "string"},
            "date_range": {
              "type": "object",
              "additionalProperties": false,
              "properties": {"start": {"type": "string"}, "end": {"type": "string"}}
            },
            "budget": {"type": "integer"}
          }
        },
        "suggestions": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`)
