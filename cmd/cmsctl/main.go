package main

import (
	"os"

	"github.com/spf13/cobra"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/database"
	"terminal-terrace/ai-magazine/internal/logging"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "cmsctl",
		Short:         "Công cụ quản trị AI Magazine",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.MustLoad(configPath)
			logging.Setup(config.Conf.Log.Level, config.Conf.Log.Format)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "đường dẫn tệp cấu hình")

	root.AddCommand(
		aiInitCmd(),
		aiTestCmd(),
		docsPublishCmd(),
		storageLinkCmd(),
		rewriteCmd(),
		seedAdminCmd(),
		configGetCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB 需要数据库的命令在 RunE 中调用
func openDB() error {
	return database.InitDatabase()
}
