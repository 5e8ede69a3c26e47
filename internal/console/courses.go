package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/view/coursedetail"
)

func newCoursesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Browse courses and attach videos",
	}
	cmd.AddCommand(
		newCoursesListCmd(a),
		newCoursesCreateCmd(a),
		newCourseShowCmd(a),
		newCourseAddVideoCmd(a),
	)
	return cmd
}

func newCoursesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := a.client().ListCourses(cmd.Context())
			if err != nil {
				return err
			}

			p := a.printer()
			if ok, err := p.yaml(courses); ok {
				return err
			}
			rows := make([][]string, 0, len(courses))
			for _, c := range courses {
				rows = append(rows, []string{c.ID, c.Name, c.Instructor.Name, strings.Join(c.Tags, ", ")})
			}
			return p.table([]string{"ID", "NAME", "INSTRUCTOR", "TAGS"}, rows)
		},
	}
}

func newCoursesCreateCmd(a *app) *cobra.Command {
	var (
		req       domain.CreateCourseRequest
		thumbnail string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if thumbnail != "" {
				req.Thumbnail = &thumbnail
			}
			course, err := a.client().CreateCourse(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), course.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "course name")
	cmd.Flags().StringVar(&req.Description, "description", "", "course description")
	cmd.Flags().StringVar(&req.Instructor.Name, "instructor", "", "instructor name")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "thumbnail URL")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "course tag, repeatable")
	return cmd
}

func (a *app) mountCourse(cmd *cobra.Command, courseID string) (*coursedetail.View, error) {
	v := coursedetail.New(a.client(), a.notifier(), a.v.GetString("playback-url"), a.logger())
	if err := v.Mount(cmd.Context(), "/courses/"+courseID); err != nil {
		return nil, fmt.Errorf("course %s: %w", courseID, err)
	}
	return v, nil
}

func newCourseShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show a course and its videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.mountCourse(cmd, args[0])
			if err != nil {
				return err
			}
			state := v.State()
			return a.printCourse(&state)
		},
	}
}

type courseOutput struct {
	Overview coursedetail.Overview    `yaml:"overview"`
	Videos   []coursedetail.VideoCard `yaml:"videos"`
}

func (a *app) printCourse(state *coursedetail.State) error {
	p := a.printer()
	overview := coursedetail.NewOverview(state.Course)
	cards := coursedetail.VideoCards(state.Course)
	if ok, err := p.yaml(courseOutput{Overview: overview, Videos: cards}); ok {
		return err
	}

	fmt.Fprintf(p.w, "%s\n%s\n", overview.Name, overview.Description)
	fmt.Fprintf(p.w, "Instructor: %s\n", overview.Instructor)
	if overview.Updated != "" {
		fmt.Fprintf(p.w, "Updated %s\n", overview.Updated)
	}
	if len(overview.Tags) > 0 {
		fmt.Fprintf(p.w, "Tags: %s\n", strings.Join(overview.Tags, ", "))
	}
	fmt.Fprintf(p.w, "Thumbnail: %s\n\n", overview.Thumbnail)

	if state.EmptyState() {
		fmt.Fprintln(p.w, "No videos yet. Add your first video with `courses add-video`.")
		return nil
	}

	rows := make([][]string, 0, len(cards))
	for i, c := range cards {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Title, c.Route})
	}
	return p.table([]string{"#", "TITLE", "ROUTE"}, rows)
}

func newCourseAddVideoCmd(a *app) *cobra.Command {
	var (
		file        string
		assetID     string
		title       string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add-video <course-id>",
		Short: "Upload a video file and attach it to a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (assetID == "") {
				return fmt.Errorf("exactly one of --file or --asset-id is required")
			}

			v, err := a.mountCourse(cmd, args[0])
			if err != nil {
				return err
			}
			if err := v.OpenAddVideo(); err != nil {
				return err
			}
			if err := v.SetTitle(title); err != nil {
				return err
			}
			if err := v.SetDescription(description); err != nil {
				return err
			}

			if file != "" {
				uploaded, err := a.upload(cmd, file)
				if err != nil {
					return err
				}
				assetID = uploaded
			}
			if err := v.UploadComplete(assetID); err != nil {
				return err
			}

			if err := v.SubmitVideo(cmd.Context()); err != nil {
				return noticed(err)
			}
			state := v.State()
			return a.printCourse(&state)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "video file to upload")
	cmd.Flags().StringVar(&assetID, "asset-id", "", "id of an already uploaded asset")
	cmd.Flags().StringVar(&title, "title", "", "video title")
	cmd.Flags().StringVar(&description, "description", "", "video description")
	return cmd
}

func (a *app) upload(cmd *cobra.Command, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	result, err := a.client().UploadVideo(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return result.AssetID, nil
}
