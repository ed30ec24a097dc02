/*
 * @Description: 命令行入口
 * @Author: 安知鱼
 * @Date: 2026-10-15 17:02:10
 * @LastEditTime: 2026-10-15 17:02:10
 * @LastEditors: 安知鱼
 */
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hollowpress/hollow-press/pkg/config"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd 构建完整的命令树
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hollow-press",
		Short: "Hollow Press 全站搜索服务",
		Long: `Hollow Press 全站搜索：聚合文章、页面、评论和静态说明页，
管理员还可以搜索用户和举报记录。

  hollow-press serve
  hollow-press search "midnight hour" --types documents,pages --limit 5`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultFilePath, "配置文件路径")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute 运行根命令，收到 SIGINT/SIGTERM 时取消 context
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
