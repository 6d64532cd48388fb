// Package models defines the data structures shared by the composer, renderers and grader.
package models

// Role is the semantic role of a single line of generated text.
type Role string

const (
	RoleBanner   Role = "banner"
	RoleSection  Role = "section"
	RoleMetadata Role = "metadata"
	RoleBody     Role = "body"
	RoleTableRow Role = "table_row"
)

// ClassifiedLine is a line tagged with its role.
type ClassifiedLine struct {
	Role Role   `json:"role"`
	Text string `json:"text"` // trimmed source text
	// Display is the decoration-free text for headings; equal to Text otherwise.
	Display string `json:"display"`
}

// IsHeading reports whether the line opens a heading block.
func (c ClassifiedLine) IsHeading() bool {
	return c.Role == RoleBanner || c.Role == RoleSection
}

// Blank reports whether the line carries no text.
func (c ClassifiedLine) Blank() bool {
	return c.Text == ""
}
