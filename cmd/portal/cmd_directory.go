package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/viewmodel"
	"github.com/spf13/cobra"
)

var (
	leaderFilter  models.LeaderFilter
	cabinetOnly   bool
	leaderReq     dto.LeaderRequest
	leaderImage   string
	collegeSearch string
)

// leadersCmd groups the leader commands
var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Browse and manage student leaders",
}

var leadersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leaders",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := leaderFilter
		if cabinetOnly {
			filter.IsCabinet = &cabinetOnly
		}

		env := app.Services.Leaders.List(cmd.Context(), filter)
		if err := check(cmd.ErrOrStderr(), env, "load leaders"); err != nil {
			return err
		}
		return printLeaders(cmd.OutOrStdout(), viewmodel.Leaders(env.Data, viewmodel.Options{Now: now()}))
	},
}

var leadersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a leader (admins only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := leaderReq
		if leaderImage != "" {
			f, err := os.Open(leaderImage)
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()
			req.Image = &dto.FileUpload{Filename: filepath.Base(leaderImage), Content: f}
		}

		env := app.Services.Leaders.Create(cmd.Context(), req)
		if err := check(cmd.ErrOrStderr(), env, "add the leader"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added leader %s\n", env.Data.ID)
		return nil
	},
}

var leadersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a leader (admins only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Leaders.Delete(cmd.Context(), models.ID(args[0]))
		if err := check(cmd.ErrOrStderr(), env, "remove the leader"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
		return nil
	},
}

// collegesCmd groups the college commands
var collegesCmd = &cobra.Command{
	Use:   "colleges",
	Short: "Browse colleges and their departments",
}

var collegesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List colleges",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Colleges.List(cmd.Context(), collegeSearch)
		if err := check(cmd.ErrOrStderr(), env, "load colleges"); err != nil {
			return err
		}
		return printColleges(cmd.OutOrStdout(), viewmodel.Colleges(env.Data, viewmodel.Options{}))
	},
}

var collegesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a college and its departments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := app.Services.Colleges.Get(cmd.Context(), models.ID(args[0]))
		if err := check(cmd.ErrOrStderr(), env, "load the college"); err != nil {
			return err
		}

		v := viewmodel.College(*env.Data, viewmodel.Options{Context: viewmodel.Detail})
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\nDean: %s\n\n", v.Name, v.DeanName)

		tw := newTable(out)
		fmt.Fprintln(tw, "DEPARTMENT\tHEAD\tEMAIL\tPHONE")
		for _, d := range v.Departments {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.HeadName, d.Email, d.Phone)
		}
		return tw.Flush()
	},
}

// directoryCmd loads leaders and colleges together; either half may fail
// on its own
var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Show the leaders page: leaders and colleges",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := app.Services.Directory.LoadDirectory(cmd.Context(), models.LeaderFilter{})
		out := cmd.OutOrStdout()
		opts := viewmodel.Options{Now: now()}

		var failed bool
		fmt.Fprintln(out, "== Leaders ==")
		if err := check(out, dir.Leaders, "load leaders"); err != nil {
			failed = true
		} else if err := printLeaders(out, viewmodel.Leaders(dir.Leaders.Data, opts)); err != nil {
			return err
		}

		fmt.Fprintln(out, "\n== Colleges ==")
		if err := check(out, dir.Colleges, "load colleges"); err != nil {
			failed = true
		} else if err := printColleges(out, viewmodel.Colleges(dir.Colleges.Data, opts)); err != nil {
			return err
		}

		if failed {
			return errReported
		}
		return nil
	},
}

func printLeaders(w io.Writer, views []viewmodel.LeaderView) error {
	if len(views) == 0 {
		fmt.Fprintln(w, "No leaders found")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tDEPARTMENT\tCOLLEGE\tCABINET")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Position, v.Department, v.CollegeName, yesNo(v.IsCabinet))
	}
	return tw.Flush()
}

func printColleges(w io.Writer, views []viewmodel.CollegeView) error {
	if len(views) == 0 {
		fmt.Fprintln(w, "No colleges found")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCOLLEGE\tDEAN\tDEPARTMENTS")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", v.ID, v.Name, v.DeanName, v.DepartmentCount)
	}
	return tw.Flush()
}

func init() {
	lf := leadersListCmd.Flags()
	lf.StringVar(&leaderFilter.Department, "department", "", "Department filter")
	lf.StringVar(&leaderFilter.Position, "position", "", "Position filter")
	lf.StringVar(&leaderFilter.College, "college", "", "College id")
	lf.StringVarP(&leaderFilter.Search, "search", "s", "", "Search text")
	lf.BoolVar(&cabinetOnly, "cabinet", false, "Only cabinet members")

	cf := leadersCreateCmd.Flags()
	cf.StringVar(&leaderReq.Name, "name", "", "Full name")
	cf.StringVar(&leaderReq.Position, "position", "", "Position")
	cf.StringVar(&leaderReq.Department, "department", "", "Department")
	cf.StringVar(&leaderReq.Description, "description", "", "Short biography")
	cf.StringVar(&leaderReq.Email, "email", "", "Contact email")
	cf.StringVar(&leaderReq.Phone, "phone", "", "Contact phone")
	cf.StringVar(&leaderReq.College, "college", "", "College id")
	cf.BoolVar(&leaderReq.IsCabinet, "cabinet", false, "Cabinet member")
	cf.StringSliceVar(&leaderReq.Achievements, "achievement", nil, "Achievement (repeatable)")
	cf.StringVar(&leaderImage, "image", "", "Profile image")
	_ = leadersCreateCmd.MarkFlagRequired("name")
	_ = leadersCreateCmd.MarkFlagRequired("position")
	_ = leadersCreateCmd.MarkFlagRequired("department")

	collegesListCmd.Flags().StringVarP(&collegeSearch, "search", "s", "", "Search text")

	leadersCmd.AddCommand(leadersListCmd, leadersCreateCmd, leadersDeleteCmd)
	collegesCmd.AddCommand(collegesListCmd, collegesShowCmd)
}
