package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollowpress/hollow-press/cmd/server"
	"github.com/hollowpress/hollow-press/pkg/config"
	"github.com/hollowpress/hollow-press/pkg/domain/model"
	search_handler "github.com/hollowpress/hollow-press/pkg/handler/search"
)

// searcher 是 search 命令需要的最小能力
type searcher interface {
	Search(ctx context.Context, req model.SearchRequest) (*model.SearchEnvelope, error)
}

type searchOptions struct {
	types      string
	limit      int
	page       int
	from       string
	category   string
	privileged bool
}

func (o searchOptions) request(query string, now time.Time) (model.SearchRequest, error) {
	types, err := model.ParseCategoryFilter(o.types)
	if err != nil {
		return model.SearchRequest{}, err
	}
	return model.SearchRequest{
		Query:      query,
		Types:      types,
		Limit:      o.limit,
		Page:       o.page,
		DateFrom:   search_handler.ParseFrom(o.from, now),
		Category:   strings.TrimSpace(o.category),
		Privileged: o.privileged,
	}, nil
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "直接在命令行执行一次搜索并输出 JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			return runSearch(cmd.Context(), cmd.OutOrStdout(), app.SearchService(), strings.Join(args, " "), opts, time.Now())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.types, "types", "", "逗号分隔的分类，例如 documents,pages")
	flags.IntVar(&opts.limit, "limit", 0, "每页数量（默认 10，最大 50）")
	flags.IntVar(&opts.page, "page", 0, "页码（从 1 开始）")
	flags.StringVar(&opts.from, "from", "", "最近 N 天，或一个日期")
	flags.StringVar(&opts.category, "category", "", "只搜索指定分类名下的文章")
	flags.BoolVar(&opts.privileged, "privileged", false, "以管理员身份搜索，包含用户和举报")
	return cmd
}

func runSearch(ctx context.Context, out io.Writer, s searcher, query string, opts searchOptions, now time.Time) error {
	req, err := opts.request(query, now)
	if err != nil {
		return err
	}
	env, err := s.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("搜索失败: %w", err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
