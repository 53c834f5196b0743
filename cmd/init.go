package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/template"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a synthgen project",
	Long:  `Create synthgen.config.json, an example recipe and a .env entry for the target database.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType, err := selectDatabaseType(sqliteFlag, postgresqlFlag, mysqlFlag)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(dbType, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

// selectDatabaseType maps the --sqlite/--postgresql/--mysql flags onto a
// database type; none set means PostgreSQL.
func selectDatabaseType(sqlite, postgresql, mysql bool) (template.DatabaseType, error) {
	selected := ""
	flagCount := 0
	for name, set := range map[string]bool{
		string(template.SQLite):     sqlite,
		string(template.PostgreSQL): postgresql,
		string(template.MySQL):      mysql,
	} {
		if set {
			selected = name
			flagCount++
		}
	}

	if flagCount > 1 {
		return "", fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
	}
	return template.ValidateDatabaseType(selected), nil
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	if config.IsInitialized() && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	tmpl := template.NewProjectTemplate(dbType)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	cfgContent, err := tmpl.GetConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.FileName, []byte(cfgContent), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", config.FileName, err)
	}

	recipeSkipped := true
	if _, err := os.Stat(template.RecipeFile); os.IsNotExist(err) {
		recipeContent, err := tmpl.GetRecipe()
		if err != nil {
			return err
		}
		if err := os.WriteFile(template.RecipeFile, []byte(recipeContent), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", template.RecipeFile, err)
		}
		recipeSkipped = false
	}

	if err := handleEnvFile(".env", tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Successfully initialized synthgen project with %s database support", dbType)
	fmt.Println()
	fmt.Println("📁 Project structure created:")
	for _, dir := range directories {
		fmt.Printf("   %s/\n", dir)
	}
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.FileName)

	if recipeSkipped {
		fmt.Printf("ℹ️  Skipped %s (already exists)\n", template.RecipeFile)
	}
	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   synthgen generate --recipe %s --preview 5\n", template.RecipeFile)
	fmt.Printf("   synthgen push --recipe %s\n", template.RecipeFile)
	fmt.Printf("   synthgen studio\n")

	return nil
}

// handleEnvFile creates envPath or appends DATABASE_URL to it, leaving an
// existing DATABASE_URL untouched.
func handleEnvFile(envPath, defaultEnvContent string) error {
	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by synthgen\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
