package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/haguru/folio/internal/render"
	"github.com/haguru/folio/pkg/dto"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.queryManager("")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			resp, err := q.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Secret)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(opts *options) *cobra.Command {
	req := dto.RegisterRequestDTO{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, with a user profile when --name is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.queryManager("")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			resp, err := q.Register(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name of the user profile")
	cmd.Flags().StringVar(&req.Alias, "alias", "", "Unique alias of the user profile")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newPostCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, read and list posts",
	}
	cmd.AddCommand(newPostCreateCmd(opts))
	cmd.AddCommand(newPostGetCmd(opts))
	cmd.AddCommand(newPostListCmd(opts))
	cmd.AddCommand(newPostSlugsCmd(opts))
	return cmd
}

func newPostCreateCmd(opts *options) *cobra.Command {
	var (
		secret, email, password string
		title, content, file    string
		tags                    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a post as a logged in user",
		Long: `Publishes a post. Either pass a session secret with --secret, or
--email and --password to log in for this call only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				content = string(data)
			}
			if secret == "" && email == "" {
				return fmt.Errorf("either --secret or --email and --password are required")
			}

			q, err := opts.queryManager(secret)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			if email != "" {
				if _, err := q.Login(ctx, email, password); err != nil {
					return err
				}
				defer func() { _, _ = q.Logout(ctx, false) }()
			}

			post, err := q.CreatePost(ctx, title, content, tags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published /posts/%s\n", post.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Session secret")
	cmd.Flags().StringVar(&email, "email", "", "Log in with this email")
	cmd.Flags().StringVar(&password, "password", "", "Password for --email")
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post content")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the content from a markdown file")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Hashtag, repeatable")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	cmd.MarkFlagsMutuallyExclusive("secret", "email")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPostGetCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get [slug]",
		Short: "Show a post rendered for the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.queryManager("")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			post, err := q.GetPostBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			if raw {
				return printJSON(cmd.OutOrStdout(), post)
			}
			return renderPost(cmd.OutOrStdout(), post)
		},
	}

	cmd.Flags().BoolVar(&raw, "json", false, "Print the post as JSON")
	return cmd
}

func newPostListCmd(opts *options) *cobra.Command {
	var tag, author, after string
	var size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.queryManager("")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			var page *dto.PostPageDTO
			switch {
			case tag != "":
				page, err = q.GetPostsByTag(ctx, tag, after, size)
			case author != "":
				page, err = q.GetPostsByAuthor(ctx, author, after, size)
			default:
				page, err = q.GetPosts(ctx, after, size)
			}
			if err != nil {
				return err
			}
			return printPage(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only posts with this hashtag")
	cmd.Flags().StringVar(&author, "author", "", "Only posts of this user id")
	cmd.Flags().StringVar(&after, "after", "", "Cursor returned by the previous page")
	cmd.Flags().IntVar(&size, "size", 0, "Page size")
	cmd.MarkFlagsMutuallyExclusive("tag", "author")
	return cmd
}

func newPostSlugsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "slugs",
		Short: "Print the slug of every post, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.queryManager("")
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd.Context())
			defer cancel()

			slugs, err := q.ListSlugs(ctx)
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), slug); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// renderPost writes the post as markdown styled by glamour.
func renderPost(w io.Writer, post *dto.PostDTO) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", post.Title)
	fmt.Fprintf(&b, "*%s*", render.FormatDate(post.Created))
	if post.Author != nil {
		fmt.Fprintf(&b, " · %s", post.Author.Name)
	}
	fmt.Fprintf(&b, " · %d views\n\n", post.Views)
	b.WriteString(post.Content)
	if len(post.Hashtags) > 0 {
		b.WriteString("\n\n")
		for _, tag := range post.Hashtags {
			fmt.Fprintf(&b, "`#%s` ", tag)
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(b.String())
	if err != nil {
		return fmt.Errorf("failed to render post: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func printPage(w io.Writer, page *dto.PostPageDTO) error {
	if len(page.Posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts yet.")
		return err
	}
	for _, post := range page.Posts {
		if _, err := fmt.Fprintf(w, "%s  %s  /posts/%s\n", render.FormatDate(post.Created), post.Title, post.Slug); err != nil {
			return err
		}
	}
	if page.Next != "" {
		_, err := fmt.Fprintf(w, "\nmore: --after %s\n", page.Next)
		return err
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
