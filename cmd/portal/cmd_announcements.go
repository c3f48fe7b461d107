package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/viewmodel"
	"github.com/spf13/cobra"
)

var (
	listQuery dto.AnnouncementQuery

	createReq      dto.AnnouncementRequest
	createCategory int64
	createHashtags string
	createMedia    string
)

// announcementsCmd groups the announcement commands
var announcementsCmd = &cobra.Command{
	Use:     "announcements",
	Aliases: []string{"ann"},
	Short:   "Browse and manage announcements",
}

var announcementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List announcements, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Announcements.ListPage(cmd.Context(), listQuery)
		if err := check(cmd.ErrOrStderr(), env, "load announcements"); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		views := viewmodel.Announcements(env.Data, viewmodel.Options{Context: viewmodel.Card, Now: now()})
		if len(views) == 0 {
			fmt.Fprintln(out, "No announcements found")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tPIN\tTITLE\tCATEGORY\tAUTHOR\tWHEN\tLIKES\tCOMMENTS")
		for _, v := range views {
			pin := ""
			if v.IsPinned {
				pin = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
				v.ID, pin, v.Title, v.CategoryLabel, v.AuthorDisplayName, v.TimestampLabel, v.Likes, v.CommentCount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if p := env.Pagination; p != nil {
			fmt.Fprintf(out, "Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
		}
		return nil
	},
}

var announcementsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an announcement with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Announcements.Get(cmd.Context(), models.ID(args[0]))
		if err := check(cmd.ErrOrStderr(), env, "load the announcement"); err != nil {
			return err
		}

		v := viewmodel.Announcement(*env.Data, viewmodel.Options{Context: viewmodel.Detail, Now: now()})
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n%s · %s · %s\n\n%s\n", v.Title, v.CategoryLabel, v.AuthorDisplayName, v.TimestampLabel, v.Body)
		if len(v.Hashtags) > 0 {
			fmt.Fprintf(out, "\n#%s\n", strings.Join(v.Hashtags, " #"))
		}
		if v.Media != "" {
			fmt.Fprintf(out, "Media: %s\n", v.Media)
		}
		fmt.Fprintf(out, "\n%d likes, %d comments\n", v.Likes, v.CommentCount)
		for _, c := range v.Comments {
			fmt.Fprintf(out, "  [%s] %s (%s): %s\n", c.AuthorInitials, c.AuthorDisplayName, c.TimestampLabel, c.Content)
		}
		return nil
	},
}

var announcementsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like or unlike an announcement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Announcements.ToggleLike(cmd.Context(), models.ID(args[0]))
		if err := check(cmd.ErrOrStderr(), env, "toggle the like"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d likes)\n", env.Data.Action, env.Data.Likes)
		return nil
	},
}

var announcementsCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Comment on an announcement",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Announcements.AddComment(cmd.Context(), models.ID(args[0]), strings.Join(args[1:], " "))
		if err := check(cmd.ErrOrStderr(), env, "add the comment"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Comment %s added\n", env.Data.ID)
		return nil
	},
}

var announcementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish an announcement (admins only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := createReq
		if cmd.Flags().Changed("category") {
			req.CategoryID = &createCategory
		}
		if createHashtags != "" {
			req.HashtagNames = strings.Split(createHashtags, ",")
		}
		if createMedia != "" {
			f, err := os.Open(createMedia)
			if err != nil {
				return fmt.Errorf("failed to open media: %w", err)
			}
			defer f.Close()
			req.Media = &dto.FileUpload{Filename: filepath.Base(createMedia), Content: f}
		}

		env := app.Services.Announcements.Create(cmd.Context(), req)
		if err := check(cmd.ErrOrStderr(), env, "publish the announcement"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published announcement %s\n", env.Data.ID)
		return nil
	},
}

var announcementsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an announcement (admins only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Announcements.Delete(cmd.Context(), models.ID(args[0]))
		if err := check(cmd.ErrOrStderr(), env, "delete the announcement"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
		return nil
	},
}

func init() {
	lf := announcementsListCmd.Flags()
	lf.StringVar(&listQuery.Category, "category", "all", "Category id, slug or name")
	lf.StringVarP(&listQuery.Search, "search", "s", "", "Search text")
	lf.StringVar(&listQuery.Hashtag, "hashtag", "", "Hashtag filter")
	lf.IntVar(&listQuery.Page, "page", 1, "Page number")
	lf.IntVar(&listQuery.PageSize, "page-size", 10, "Announcements per page")

	cf := announcementsCreateCmd.Flags()
	cf.StringVarP(&createReq.Title, "title", "t", "", "Title")
	cf.StringVarP(&createReq.Description, "description", "d", "", "Body text")
	cf.Int64Var(&createCategory, "category", 0, "Category id")
	cf.StringVar(&createHashtags, "hashtags", "", "Comma separated hashtags")
	cf.BoolVar(&createReq.IsPinned, "pinned", false, "Pin the announcement")
	cf.StringVar(&createMedia, "media", "", "Image or file to attach")
	_ = announcementsCreateCmd.MarkFlagRequired("title")
	_ = announcementsCreateCmd.MarkFlagRequired("description")

	announcementsCmd.AddCommand(
		announcementsListCmd,
		announcementsShowCmd,
		announcementsLikeCmd,
		announcementsCommentCmd,
		announcementsCreateCmd,
		announcementsDeleteCmd,
	)
}
