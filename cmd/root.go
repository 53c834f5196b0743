package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════╗",
		"║   ███████╗██╗   ██╗███╗   ██╗████████╗██╗  ██╗           ║",
		"║   ██╔════╝╚██╗ ██╔╝████╗  ██║╚══██╔══╝██║  ██║           ║",
		"║   ███████╗ ╚████╔╝ ██╔██╗ ██║   ██║   ███████║           ║",
		"║   ╚════██║  ╚██╔╝  ██║╚██╗██║   ██║   ██╔══██║           ║",
		"║   ███████║   ██║   ██║ ╚████║   ██║   ██║  ██║  gen      ║",
		"║   ╚══════╝   ╚═╝   ╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝           ║",
		"║                                                          ║",
		"║        Numeric • Categorical • Datetime • Text           ║",
		"╚══════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "synthgen",
	Short: "Generate synthetic tabular data from column specifications",
	Long: `
synthgen builds tables of random data from a list of typed columns and
exports them as CSV, JSON or SQLite, or loads them straight into a database.

Column kinds:
- Numeric      (normal distribution, mean and standard deviation)
- Categorical  (uniform choice from a list of categories)
- Datetime     (a random day within the last 365 days)
- Text         (8 random alphanumeric characters)

Database Support:
- PostgreSQL
- MySQL
- SQLite`,
	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("synthgen version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./synthgen.config.json)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("synthgen.config")
	}

	viper.SetEnvPrefix("SYNTHGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}
