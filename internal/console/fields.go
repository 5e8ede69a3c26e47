package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/view/customfields"
)

type fieldFlags struct {
	name      string
	label     string
	fieldType string
	required  bool
	fileTypes string
	inactive  bool
	teams     []string
	toggle    []string
	allTeams  bool
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "field name, e.g. githubProfile")
	flags.StringVar(&f.label, "label", "", "display label, e.g. GitHub Profile")
	flags.StringVar(&f.fieldType, "type", string(domain.FieldTypeText), "field type: text, link, file or array")
	flags.BoolVar(&f.required, "required", false, "require a value on product submissions")
	flags.StringVar(&f.fileTypes, "file-types", "", "accepted file types for file fields, e.g. .pdf,.docx")
	flags.BoolVar(&f.inactive, "inactive", false, "create or mark the field inactive")
	flags.StringSliceVar(&f.teams, "team", nil, "scope the field to exactly these teams (id or name)")
	flags.StringSliceVar(&f.toggle, "toggle-team", nil, "add or remove a team (id or name)")
	flags.BoolVar(&f.allTeams, "all-teams", false, "scope the field to every team")
}

// apply pushes the flags the user set into the open edit dialog.
func (f *fieldFlags) apply(cmd *cobra.Command, v *customfields.View) error {
	changed := cmd.Flags().Changed
	state := v.State()

	steps := []struct {
		flag string
		fn   func() error
	}{
		{"name", func() error { return v.SetName(f.name) }},
		{"label", func() error { return v.SetLabel(f.label) }},
		{"type", func() error { return v.SetType(domain.FieldType(f.fieldType)) }},
		{"required", func() error { return v.SetRequired(f.required) }},
		{"file-types", func() error { return v.SetAcceptedFileTypes(f.fileTypes) }},
		{"inactive", func() error { return v.SetActive(!f.inactive) }},
		{"all-teams", func() error { return v.SelectAllTeams(f.allTeams) }},
	}
	for _, step := range steps {
		if !changed(step.flag) {
			continue
		}
		if err := step.fn(); err != nil {
			return err
		}
	}

	if changed("team") {
		if err := v.SelectAllTeams(false); err != nil {
			return err
		}
		for _, ref := range f.teams {
			id, err := resolveTeam(state.Teams, ref)
			if err != nil {
				return err
			}
			if err := v.ToggleTeam(id); err != nil {
				return err
			}
		}
	}
	for _, ref := range f.toggle {
		id, err := resolveTeam(state.Teams, ref)
		if err != nil {
			return err
		}
		if err := v.ToggleTeam(id); err != nil {
			return err
		}
	}
	return nil
}

func resolveTeam(teams []domain.Team, ref string) (string, error) {
	for _, t := range teams {
		if t.ID == ref || strings.EqualFold(t.Name, ref) {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("unknown team %q", ref)
}

func newFieldsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"custom-fields"},
		Short:   "Manage custom product fields",
	}
	cmd.AddCommand(
		newFieldsListCmd(a),
		newFieldsAddCmd(a),
		newFieldsEditCmd(a),
		newFieldsDeleteCmd(a),
	)
	return cmd
}

func (a *app) mountFields(ctx context.Context) (*customfields.View, error) {
	v := customfields.New(a.client(), a.notifier(), a.logger())
	if err := v.Mount(ctx); err != nil {
		return nil, noticed(err)
	}
	return v, nil
}

func newFieldsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List custom fields with their team scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.mountFields(cmd.Context())
			if err != nil {
				return err
			}
			state := v.State()
			return a.printFields(state.Fields, state.Teams)
		},
	}
}

func (a *app) printFields(fields []domain.CustomField, teams []domain.Team) error {
	p := a.printer()
	cards := customfields.FieldCards(fields, teams)
	if ok, err := p.yaml(cards); ok {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(p.w, "No custom fields defined yet. Add one with `fields add`.")
		return nil
	}

	rows := make([][]string, 0, len(cards))
	for i, c := range cards {
		rows = append(rows, []string{
			fields[i].ID, c.Name, c.Label, string(c.Type), strconv.FormatBool(c.Required),
			dash(c.AcceptedFileTypes), c.Status, strings.Join(c.TeamBadges, ", "),
		})
	}
	return p.table([]string{"ID", "NAME", "LABEL", "TYPE", "REQUIRED", "FILE TYPES", "STATUS", "TEAMS"}, rows)
}

func newFieldsAddCmd(a *app) *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a custom field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.mountFields(cmd.Context())
			if err != nil {
				return err
			}
			if err := v.AddField(); err != nil {
				return err
			}
			if err := f.apply(cmd, v); err != nil {
				return err
			}
			if err := v.SaveField(cmd.Context()); err != nil {
				return noticed(err)
			}
			state := v.State()
			return a.printFields(state.Fields[len(state.Fields)-1:], state.Teams)
		},
	}
	f.register(cmd)
	return cmd
}

func newFieldsEditCmd(a *app) *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <field-id>",
		Short: "Change a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.mountFields(cmd.Context())
			if err != nil {
				return err
			}

			index := -1
			for i, field := range v.State().Fields {
				if field.ID == args[0] {
					index = i
					break
				}
			}
			if index < 0 {
				return fmt.Errorf("custom field %s not found", args[0])
			}

			if err := v.EditField(index); err != nil {
				return err
			}
			if err := f.apply(cmd, v); err != nil {
				return err
			}
			if err := v.SaveField(cmd.Context()); err != nil {
				return noticed(err)
			}
			state := v.State()
			return a.printFields(state.Fields[index:index+1], state.Teams)
		},
	}
	f.register(cmd)
	return cmd
}

func newFieldsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <field-id>",
		Short: "Delete a custom field",
		Long:  "Delete a custom field. This cannot be undone: the field is removed from the server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.mountFields(cmd.Context())
			if err != nil {
				return err
			}
			if err := v.RequestDelete(args[0]); err != nil {
				return noticed(err)
			}
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Refusing to delete %s without --yes.\n", args[0])
				return v.CancelDelete()
			}
			return noticed(v.ConfirmDelete(cmd.Context()))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}
