package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-floorplan-kit/pkg/domain"
)

// OptionCount は1回の生成で要求する間取り案の数です。
const OptionCount = 4

// designRules はすべてのプロンプトに共通するスタイル・レイアウト指示です。
var designRules = []string{
	"Style: A top-down architectural floor plan.",
	"Content: Include walls, doorways, windows, and standard furniture placement to show scale and function.",
	"Layout: Ensure a realistic and logical layout flow (e.g., living -> dining -> kitchen, common hall to bedrooms).",
	"Labels: Clearly label each room and include approximate dimensions.",
	"Aesthetics: Use a clean, minimalist aesthetic with a white background and black or gray lines for clarity.",
	"Format: The output must be a high-resolution PNG.",
	fmt.Sprintf("Variety: Provide %d distinct and different layout options.", OptionCount),
	"Overall style: Modern residential layout.",
}

// BuildFloorPlanPrompt は要件から Imagen 向けのプロンプトを組み立てます。
// 同じ入力に対しては常に同じ文字列を返します。
func BuildFloorPlanPrompt(req domain.Requirements, units domain.Units) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d clean, professional, architectural 2D floor plan images with these requirements:\n\n", OptionCount)
	fmt.Fprintf(&sb, "- Plot size: %d %s\n", req.PlotSize, units.PromptSuffix())
	fmt.Fprintf(&sb, "- Bedrooms: %d\n", req.Bedrooms)
	fmt.Fprintf(&sb, "- Bathrooms: %d\n", req.Bathrooms)
	fmt.Fprintf(&sb, "- Living room: %d\n", req.LivingRooms)
	fmt.Fprintf(&sb, "- Kitchen: %d\n", req.Kitchens)
	fmt.Fprintf(&sb, "- Dining area: %s\n", yesNo(req.HasDining))
	fmt.Fprintf(&sb, "- Balcony: %s\n", yesNo(req.HasBalcony))
	fmt.Fprintf(&sb, "- Car parking: %s\n", yesNo(req.HasParking))

	sb.WriteString("\nDesign rules:\n")
	for _, rule := range designRules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteByte('\n')
	}

	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
