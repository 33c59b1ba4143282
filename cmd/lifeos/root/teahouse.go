package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZhen345/LifeOS/internal/ui"
)

func newTeahouseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teahouse",
		Short: "The tea house: share progress with others",
	}
	cmd.AddCommand(
		newTeahouseFeedCmd(),
		newTeahousePostCmd(),
		newTeahouseLikeCmd(),
		newTeahouseCommentCmd(),
		newTeahouseDeleteCmd(),
	)
	return cmd
}

func newTeahouseFeedCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Read the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			author, err := currentAuthor(ctx, svc)
			if err != nil {
				return err
			}
			com := communityService(svc)
			posts, err := com.Posts(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(posts) > limit {
				posts = posts[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTeapot, "Tea House"))
			for _, p := range posts {
				fmt.Fprintf(out, "\n%s %s  %s\n", p.AuthorAvatar, ui.Key.Render(p.AuthorName), ui.Muted.Render(p.CreatedAt.Format("Jan 2 15:04")))
				fmt.Fprintln(out, p.Content)
				fmt.Fprintf(out, "%s ❤️ %d  💬 %d  %s\n", ui.Muted.Render("·"), len(p.Likes), len(p.Comments), ui.Muted.Render(p.ID))
				for _, c := range p.Comments {
					fmt.Fprintf(out, "    %s %s: %s\n", c.AuthorAvatar, ui.Key.Render(c.AuthorName), c.Content)
				}
			}

			// Reading the feed acknowledges activity on your own posts.
			if err := com.AcknowledgeTeaHouse(ctx, author.ID); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "How many posts to show")
	return cmd
}

func newTeahousePostCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Publish a post",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("content is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			author, err := currentAuthor(ctx, svc)
			if err != nil {
				return err
			}
			post, err := communityService(svc).CreatePost(ctx, author, args[0], tags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Posted. %s\n", ui.Good.Render(ui.IconDone), ui.Muted.Render(post.ID))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Topic tags")
	return cmd
}

func newTeahouseLikeCmd() *cobra.Command {
	var commentID string
	cmd := &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like (or unlike) a post or comment",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("post id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			author, err := currentAuthor(ctx, svc)
			if err != nil {
				return err
			}
			com := communityService(svc)
			var liked bool
			if commentID != "" {
				liked, err = com.ToggleCommentLike(ctx, author.ID, args[0], commentID)
			} else {
				liked, err = com.ToggleLike(ctx, author.ID, args[0])
			}
			if err != nil {
				return err
			}
			if liked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Liked.\n", ui.Good.Render("❤️"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Unliked."))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&commentID, "comment", "", "Like a comment on the post instead")
	return cmd
}

func newTeahouseCommentCmd() *cobra.Command {
	var replyTo string
	cmd := &cobra.Command{
		Use:   "comment <post-id> <content>",
		Short: "Comment on a post",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("post id and content are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			author, err := currentAuthor(ctx, svc)
			if err != nil {
				return err
			}
			if _, err := communityService(svc).AddComment(ctx, author, args[0], args[1], replyTo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Commented.\n", ui.Good.Render(ui.IconDone))
			return nil
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "Comment id being replied to")
	return cmd
}

func newTeahouseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete one of your posts",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("post id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			author, err := currentAuthor(ctx, svc)
			if err != nil {
				return err
			}
			if err := communityService(svc).DeletePost(ctx, author.ID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted.\n", ui.Warn.Render(ui.IconWarn))
			return nil
		},
	}
}
