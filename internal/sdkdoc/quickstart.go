package sdkdoc

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/quantmind-br/sitedocs-go/internal/domain"
)

const (
	// QuickstartTitle is the title of the quickstart page
	QuickstartTitle = "SDK Quickstart"

	// DefaultPreserveThreshold is the size above which an existing
	// quickstart is considered hand-written
	DefaultPreserveThreshold = 500
)

// Quickstart renders the getting-started page for the SDK
type Quickstart struct {
	threshold int
}

// NewQuickstart creates a quickstart renderer. A threshold of 0 always
// regenerates the page.
func NewQuickstart(threshold int) *Quickstart {
	if threshold < 0 {
		threshold = 0
	}
	return &Quickstart{threshold: threshold}
}

// ShouldPreserve reports whether the page at path holds curated content
// that must be left untouched. Length is counted in UTF-16 code units, so
// characters outside the Basic Multilingual Plane count twice.
func (q *Quickstart) ShouldPreserve(path string) (bool, error) {
	if q.threshold == 0 {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return utf16Len(data) > q.threshold, nil
}

func utf16Len(data []byte) int {
	n := 0
	for _, r := range string(data) {
		n += utf16.RuneLen(r)
	}
	return n
}

// Render returns the quickstart for the package. The output depends only
// on the manifest name.
func (q *Quickstart) Render(m domain.PackageManifest) string {
	name := m.Name
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", QuickstartTitle)
	sb.WriteString("Get started with the Alternate Futures SDK in under 5 minutes.\n\n")

	sb.WriteString("## Installation\n\n")
	sb.WriteString("::: code-group\n\n")
	for _, pm := range []struct{ label, cmd string }{
		{"npm", "npm install"},
		{"pnpm", "pnpm add"},
		{"yarn", "yarn add"},
	} {
		fmt.Fprintf(&sb, "```bash [%s]\n%s %s\n```\n\n", pm.label, pm.cmd, name)
	}
	sb.WriteString(":::\n\n")

	sb.WriteString("## Basic Setup\n\n")
	sb.WriteString("### Node.js\n\n")
	sb.WriteString("```typescript\n")
	fmt.Fprintf(&sb, "import { AlternateFuturesSdk, PersonalAccessTokenService } from '%s/node';\n\n", name)
	sb.WriteString("// Create the access token service\n")
	sb.WriteString("const accessTokenService = new PersonalAccessTokenService({\n")
	sb.WriteString("  personalAccessToken: process.env.AF_TOKEN,\n")
	sb.WriteString("  projectId: process.env.AF_PROJECT_ID,\n")
	sb.WriteString("});\n\n")
	sb.WriteString("// Initialize the SDK\n")
	sb.WriteString("const af = new AlternateFuturesSdk({\n")
	sb.WriteString("  accessTokenService,\n")
	sb.WriteString("});\n\n")
	sb.WriteString("// You're ready to go!\n")
	sb.WriteString("const sites = await af.sites().list();\n")
	sb.WriteString("console.log('Sites:', sites);\n")
	sb.WriteString("```\n\n")

	sb.WriteString("### Browser\n\n")
	sb.WriteString("```typescript\n")
	fmt.Fprintf(&sb, "import { AlternateFuturesSdk, StaticAccessTokenService } from '%s';\n\n", name)
	sb.WriteString("// For browser apps, use StaticAccessTokenService\n")
	sb.WriteString("const accessTokenService = new StaticAccessTokenService({\n")
	sb.WriteString("  token: 'your-access-token',\n")
	sb.WriteString("  projectId: 'your-project-id',\n")
	sb.WriteString("});\n\n")
	sb.WriteString("const af = new AlternateFuturesSdk({\n")
	sb.WriteString("  accessTokenService,\n")
	sb.WriteString("});\n")
	sb.WriteString("```\n\n")

	sb.WriteString("For complete API documentation, see the [API Reference](./api.md).\n")

	return sb.String()
}
