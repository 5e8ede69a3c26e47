package console

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/view/customfields"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Submit products",
	}

	var (
		product domain.Product
		values  string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product with custom field values",
		Example: `  course-admin products create --team design --name Portfolio \
    --values '{"githubProfile":"https://github.com/octocat","tags":["ui","ux"]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if values != "" {
				if err := json.Unmarshal([]byte(values), &product.Fields); err != nil {
					return fmt.Errorf("--values must be a JSON object: %w", err)
				}
			}

			api := a.client()
			v := customfields.New(api, a.notifier(), a.logger())
			if err := v.Mount(cmd.Context()); err != nil {
				return noticed(err)
			}

			teamID, err := resolveTeam(v.State().Teams, product.TeamID)
			if err != nil {
				return err
			}
			product.TeamID = teamID

			v.OpenProductModal()
			defer v.CloseProductModal()

			created, err := api.CreateProduct(cmd.Context(), product)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&product.Name, "name", "", "product name")
	create.Flags().StringVar(&product.Description, "description", "", "product description")
	create.Flags().StringVar(&product.TeamID, "team", "", "team id or name")
	create.Flags().StringVar(&values, "values", "", "custom field values as a JSON object")
	_ = create.MarkFlagRequired("team")
	cmd.AddCommand(create)

	return cmd
}
