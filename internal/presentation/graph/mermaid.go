package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/hollow/internal/validator"
	"github.com/aretw0/hollow/pkg/domain"
)

// Overlay marks a playthrough on the map.
type Overlay struct {
	Visited []string
	Current string
}

// OverlayOf builds the overlay of a snapshot.
func OverlayOf(s domain.GameState) *Overlay {
	return &Overlay{Visited: s.VisitedScenes, Current: s.CurrentSceneID}
}

// GenerateMermaid draws the scene map as a Mermaid flowchart:
// - Start scene: ((Circle))
// - Scene with a hazard: {{Hexagon}}
// - Other scenes: [Rectangle]
// Open exits are solid arrows, locked exits dotted and changeScene effects thick.
func GenerateMermaid(c *domain.Content, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range sceneIDs(c) {
		s := c.Scenes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == c.Game.StartScene:
			opener, closer = "((", "))"
		case s.Hazard != nil:
			opener, closer = "{{", "}}"
		}
		label := s.Name
		if label == "" {
			label = id
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		for _, e := range validator.Edges(c, s) {
			to := sanitizeMermaidID(e.To)
			via := escape(e.Via)
			switch e.Kind {
			case validator.EdgeLocked:
				fmt.Fprintf(&sb, "    %s -. \"%s 🔒\" .-> %s\n", safeID, via, to)
			case validator.EdgeJump:
				fmt.Fprintf(&sb, "    %s == \"%s\" ==> %s\n", safeID, via, to)
			default:
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, via, to)
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Playthrough\n")
		// Black text keeps labels readable on both themes.
		sb.WriteString("    classDef visited fill:#e5e7eb,stroke:#4b5563,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#fecaca,stroke:#b91c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] || id == overlay.Current {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func sceneIDs(c *domain.Content) []string {
	ids := make([]string, 0, len(c.Scenes))
	for id, s := range c.Scenes {
		if s != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
