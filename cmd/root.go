package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "eduforge",
	Short: "Synthetic university dataset generator",
	Long: `
EduForge generates a self-consistent synthetic university dataset
(departments, teachers, students, courses, schedules, enrollments,
grades, attendance, assignments) and loads it into a relational
database in dependency order.

Database Support:
- MySQL
- PostgreSQL
- SQLite (embedded databases)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("EduForge version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default eduforge.config.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

func initConfig() {
	// .env values feed the url_env lookup, missing file is fine
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("eduforge.config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
