package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lifeos",
	Short:         "LifeOS — local-first gamified task manager",
	Long:          "LifeOS turns your daily tasks into an RPG: complete work, earn attribute points and XP, keep streaks, and climb the ladder.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAccountCmd(),
		newTaskCmd(),
		newPlanCmd(),
		newStatusCmd(),
		newCheckinsCmd(),
		newAchievementsCmd(),
		newLadderCmd(),
		newBoardCmd(),
		newProfileCmd(),
		newTeahouseCmd(),
		newPartnerCmd(),
		newAICmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
