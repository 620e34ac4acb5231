// ABOUTME: Install the agent skill for geomark
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the agent skill",
	Long: `Install the geomark skill for AI coding agents.

This copies the skill definition to ~/.claude/skills/geomark/
so an agent can use geomark commands contextually.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd, home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

// skillPath returns where the skill file lives under home.
func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "geomark", "SKILL.md")
}

func installSkill(cmd *cobra.Command, home string) error {
	out := cmd.OutOrStdout()
	dest := skillPath(home)

	_, _ = fmt.Fprintln(out, "┌─────────────────────────────────────────────────────────────┐")
	_, _ = fmt.Fprintln(out, "│                geomark Skill for Agents                     │")
	_, _ = fmt.Fprintln(out, "└─────────────────────────────────────────────────────────────┘")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "This will install the geomark skill, enabling an agent to:")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "  • Drop, edit, move, and remove map markers")
	_, _ = fmt.Fprintln(out, "  • Record observations with photos and dates")
	_, _ = fmt.Fprintln(out, "  • Export markers to GeoJSON, YAML, and Markdown")
	_, _ = fmt.Fprintln(out, "  • Use the /geomark slash command")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Destination:")
	_, _ = fmt.Fprintf(out, "  %s\n", dest)
	_, _ = fmt.Fprintln(out)

	if _, err := os.Stat(dest); err == nil {
		_, _ = fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		_, _ = fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		if !askConfirm(cmd, "Install the geomark skill? [y/N] ") {
			_, _ = fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		_, _ = fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil { // #nosec G301 - skill dir needs to be readable
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(dest, content, 0600); err != nil { // #nosec G306 - skill file needs to be readable
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	_, _ = color.New(color.FgGreen).Fprintln(out, "✓ Installed geomark skill successfully!")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Try asking: \"Drop a marker at the office\" or \"What did I see near Lyon?\"")
	return nil
}
