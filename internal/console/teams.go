package console

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ynastt/course-admin/internal/domain"
)

func newTeamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List and create teams",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := a.client().ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			return a.printTeams(teams)
		},
	})

	var team domain.Team
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.client().CreateTeam(cmd.Context(), team)
			if err != nil {
				return err
			}
			return a.printTeams([]domain.Team{*created})
		},
	}
	create.Flags().StringVar(&team.Name, "name", "", "team name")
	create.Flags().StringVar(&team.Description, "description", "", "team description")
	create.Flags().StringVar(&team.CreatedBy.Name, "creator-name", "", "name of the person creating the team")
	create.Flags().StringVar(&team.CreatedBy.Email, "creator-email", "", "email of the person creating the team")
	_ = create.MarkFlagRequired("name")
	cmd.AddCommand(create)

	return cmd
}

func (a *app) printTeams(teams []domain.Team) error {
	p := a.printer()
	if ok, err := p.yaml(teams); ok {
		return err
	}

	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		creator := t.CreatedBy.Name
		if t.CreatedBy.Email != "" {
			creator = fmt.Sprintf("%s <%s>", creator, t.CreatedBy.Email)
		}
		rows = append(rows, []string{t.ID, t.Name, dash(t.Description), dash(creator)})
	}
	return p.table([]string{"ID", "NAME", "DESCRIPTION", "CREATED BY"}, rows)
}
