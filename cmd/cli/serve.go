package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollowpress/hollow-press/cmd/server"
	"github.com/hollowpress/hollow-press/pkg/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 搜索服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}

			app, cleanup, err := server.NewApp(cfg)
			if err != nil {
				return fmt.Errorf("应用初始化失败: %w", err)
			}
			defer cleanup()
			defer app.Stop()

			if !quiet {
				app.PrintBanner()
			}
			if err := app.Run(cmd.Context()); err != nil {
				return fmt.Errorf("应用运行失败: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "不打印启动横幅")
	return cmd
}
