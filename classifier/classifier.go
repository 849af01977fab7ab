// Package classifier assigns a category, content type and improved description
// to a bookmark by calling an external chat-completion service with a strict
// JSON response schema.
package classifier

import (
	"fmt"
	"strings"
)

// Input carries the bookmark text fields the classifier reasons about.
type Input struct {
	Title        string
	URL          string
	Description  string
	LocationName string
}

// Result is the structured categorization returned by the service.
type Result struct {
	CategoryID           int     `json:"category_id"`
	Confidence           float64 `json:"confidence"`
	Reasoning            string  `json:"reasoning"`
	SuggestedDescription string  `json:"suggested_description"`
	ContentType          string  `json:"content_type"`
}

// The fixed, closed category set. ID 10 is the catch-all.
const (
	MinCategoryID = 1
	MaxCategoryID = 10
)

var categoryLines = []string{
	"1. Food & Recipes - Cooking recipes, restaurants, and food content",
	"2. Travel & Places - Travel destinations, locations, and places to visit",
	"3. Shopping - Products, stores, and shopping recommendations",
	"4. Entertainment - Movies, shows, music, and entertainment content",
	"5. Education - Learning resources, tutorials, and educational content",
	"6. Health & Fitness - Health tips, workout routines, and wellness content",
	"7. Technology - Tech products, tutorials, and technology content",
	"8. Lifestyle - General lifestyle, home, and personal content",
	"9. Business - Work, business, and professional content",
	"10. Uncategorized - Items that don't fit other categories",
}

const systemInstruction = "You are an AI assistant that categorizes bookmarks accurately and provides helpful suggestions."

// buildPrompt renders the categorization prompt for a bookmark.
func buildPrompt(input Input) string {
	description := input.Description
	if description == "" {
		description = "No description"
	}
	location := input.LocationName
	if location == "" {
		location = "No location"
	}

	var sb strings.Builder
	sb.WriteString("Please categorize this bookmark and suggest improvements:\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", input.Title)
	fmt.Fprintf(&sb, "URL: %s\n", input.URL)
	fmt.Fprintf(&sb, "Description: %s\n", description)
	fmt.Fprintf(&sb, "Location: %s\n\n", location)
	sb.WriteString("Available categories:\n")
	for _, line := range categoryLines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\nPlease respond with a JSON object containing:\n")
	sb.WriteString("- category_id: number (1-10 based on the categories above)\n")
	sb.WriteString("- confidence: number (0.0-1.0)\n")
	sb.WriteString("- reasoning: string (brief explanation)\n")
	sb.WriteString("- suggested_description: string (improved description if needed)\n")
	sb.WriteString("- content_type: string (e.g., \"recipe\", \"location\", \"product\", \"article\")\n")
	return sb.String()
}

// validateResult checks a parsed response against the schema ranges.
func validateResult(result *Result) error {
	if result.CategoryID < MinCategoryID || result.CategoryID > MaxCategoryID {
		return fmt.Errorf("category_id %d outside range %d-%d", result.CategoryID, MinCategoryID, MaxCategoryID)
	}
	if result.Confidence < 0.0 || result.Confidence > 1.0 {
		return fmt.Errorf("confidence %v outside range 0.0-1.0", result.Confidence)
	}
	return nil
}
