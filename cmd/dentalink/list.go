package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/listing"
	"github.com/dentalink/dentalink/internal/tui"
)

const listWidth = 80

type listOptions struct {
	search  string
	tag     string
	journal string
	limit   int
	page    int
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:       "list articles|research",
		Short:     "Print one page of articles or research",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"articles", "research"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFilterFlag(cmd, args[0]); err != nil {
				return err
			}
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg); err != nil {
				return err
			}
			client := api.NewClient(cfg.API)
			format := listing.CardFormat{Width: listWidth - 4}
			out := cmd.OutOrStdout()

			switch args[0] {
			case "articles":
				limit := opts.limit
				if limit <= 0 {
					limit = cfg.Listing.PageLimit
				}
				format.Lines = cfg.Listing.SummaryLines
				qs := listing.NewQueryState("/articles", "tag", limit)
				qs.SetSearchText(opts.search)
				qs.SetFilterValue(opts.tag)
				qs.SetPage(opts.page)
				fetch := func(ctx context.Context, q listing.Query) (api.Result[api.Article], error) {
					return client.ListArticles(ctx, api.ArticleParams{Tag: q.Filter, Search: q.Search, Limit: q.Limit, Page: q.Page})
				}
				printListing(cmd.Context(), out, qs, listing.NewViewModel("cli.articles", fetch, listing.ArticleTerms),
					listing.RenderOptions[api.Article]{
						EmptyText: listing.ArticlesEmptyText,
						HintText:  listing.ArticlesHintText,
						Card:      format.ArticleCard,
					})
			case "research":
				limit := opts.limit
				if limit <= 0 {
					limit = cfg.Listing.ResearchLimit
				}
				format.Lines = cfg.Listing.AbstractLines
				qs := listing.NewQueryState("/research", "journal", limit)
				qs.SetSearchText(opts.search)
				qs.SetFilterValue(opts.journal)
				qs.SetPage(opts.page)
				fetch := func(ctx context.Context, q listing.Query) (api.Result[api.ResearchPaper], error) {
					return client.ListResearch(ctx, api.ResearchParams{Journal: q.Filter, Search: q.Search, Limit: q.Limit, Page: q.Page})
				}
				printListing(cmd.Context(), out, qs, listing.NewViewModel("cli.research", fetch, listing.ResearchTerms),
					listing.RenderOptions[api.ResearchPaper]{
						EmptyText: listing.ResearchEmptyText,
						HintText:  listing.ResearchHintText,
						Card:      format.ResearchCard,
					})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "Search text")
	cmd.Flags().StringVar(&opts.tag, "tag", "", "Article tag filter")
	cmd.Flags().StringVar(&opts.journal, "journal", "", "Research journal filter")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Page size (default from config)")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number")
	return cmd
}

// checkFilterFlag rejects the filter flag that belongs to the other kind.
func checkFilterFlag(cmd *cobra.Command, kind string) error {
	wrong := map[string]string{"articles": "journal", "research": "tag"}[kind]
	if wrong != "" && cmd.Flags().Changed(wrong) {
		return fmt.Errorf("--%s does not apply to %s", wrong, kind)
	}
	return nil
}

// printListing runs one fetch through the same view model the TUI uses and
// prints the rendered page. A failed fetch prints the empty state.
func printListing[T any](ctx context.Context, out io.Writer, qs *listing.QueryState, vm *listing.ViewModel[T], opts listing.RenderOptions[T]) {
	if ctx == nil {
		ctx = context.Background()
	}
	vm.Settle(vm.Submit(qs.Query()).Run(ctx))

	page := listing.Render(vm.State(), qs.Query(), vm.Vocabulary(), opts)
	fmt.Fprintln(out, tui.RenderPage(page, listWidth))
	if page.Kind == listing.PageCards {
		fmt.Fprintf(out, "%s • %s\n", tui.MsgResultsCount(len(page.Cards), page.Total), qs.Location())
		for _, c := range page.Cards {
			fmt.Fprintln(out, c.Location)
		}
	}
}
