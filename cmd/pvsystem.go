package cmd

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/steadysun/steadysun-go/filter"
	"github.com/steadysun/steadysun-go/pvsystem"
)

var (
	listAll    bool
	listLimit  int
	listFilter string

	createName        string
	createLon         float64
	createLat         float64
	createPdc0        float64
	createOrientation float64
	createInclination float64

	deleteYes bool
)

// pvsystemCmd groups the PV system commands
var pvsystemCmd = &cobra.Command{
	Use:     "pvsystem",
	Aliases: []string{"pv"},
	Short:   "Manage PV systems",
}

var pvsystemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List PV systems",
	Long: `List your PV systems.

--filter takes either the name of a filter from the config file or an
expression, for example:

  steadysun pvsystem list --all --filter 'PeakPower > 5000 and PVType == "fixed"'`,
	Args: cobra.NoArgs,
	RunE: runPVSystemList,
}

var pvsystemUUIDsCmd = &cobra.Command{
	Use:   "uuids",
	Short: "Show the UUID and name of every PV system",
	Args:  cobra.NoArgs,
	RunE:  runPVSystemUUIDs,
}

var pvsystemGetCmd = &cobra.Command{
	Use:   "get <uuid>",
	Short: "Show the configuration of a PV system",
	Args:  cobra.ExactArgs(1),
	RunE:  runPVSystemGet,
}

var pvsystemCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a single-array PV system",
	Args:  cobra.NoArgs,
	RunE:  runPVSystemCreate,
}

var pvsystemRenameCmd = &cobra.Command{
	Use:   "rename <uuid> <name>",
	Short: "Rename a PV system",
	Args:  cobra.ExactArgs(2),
	RunE:  runPVSystemRename,
}

var pvsystemDeleteCmd = &cobra.Command{
	Use:   "delete <uuid>",
	Short: "Delete a PV system",
	Long:  `Delete a PV system. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPVSystemDelete,
}

func init() {
	rootCmd.AddCommand(pvsystemCmd)
	pvsystemCmd.AddCommand(pvsystemListCmd, pvsystemUUIDsCmd, pvsystemGetCmd, pvsystemCreateCmd, pvsystemRenameCmd, pvsystemDeleteCmd)

	pvsystemListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "fetch every page")
	pvsystemListCmd.Flags().IntVar(&listLimit, "limit", 0, "page size (default api.page_limit)")
	pvsystemListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter name or expression")

	pvsystemCreateCmd.Flags().StringVar(&createName, "name", "", "system name")
	pvsystemCreateCmd.Flags().Float64Var(&createLon, "lon", 0, "longitude in degrees")
	pvsystemCreateCmd.Flags().Float64Var(&createLat, "lat", 0, "latitude in degrees")
	pvsystemCreateCmd.Flags().Float64Var(&createPdc0, "pdc0", 0, "peak power in W")
	pvsystemCreateCmd.Flags().Float64Var(&createOrientation, "orientation", pvsystem.DefaultOrientation, "azimuth in degrees, 180 is south")
	pvsystemCreateCmd.Flags().Float64Var(&createInclination, "inclination", pvsystem.DefaultInclination, "tilt in degrees")
	for _, name := range []string{"name", "lon", "lat", "pdc0"} {
		_ = pvsystemCreateCmd.MarkFlagRequired(name)
	}

	pvsystemDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid PV system UUID %q: %w", s, err)
	}
	return id, nil
}

func runPVSystemList(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	limit := listLimit
	if limit <= 0 {
		limit = cfg.API.PageLimit
	}

	systems, err := pvsystem.List(cmd.Context(), client, limit, listAll)
	if err != nil {
		return err
	}

	if listFilter != "" {
		f, err := filters.Resolve(listFilter)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		logger.Info().Str("filter", f.Expression()).Msg("Filtering PV systems")

		systems, err = filter.NewEvaluator(logger).Evaluate(cmd.Context(), f, systems)
		if err != nil {
			return err
		}
	}

	return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).print(systems, func(w io.Writer) error {
		if len(systems) == 0 {
			fmt.Fprintln(w, "No PV systems found.")
			return nil
		}
		fmt.Fprintln(w, "UUID\tNAME\tTITLE\tTYPE\tPEAK (W)\tLON\tLAT")
		for _, s := range systems {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%g\t%g\n",
				s.UUID, s.Name, s.Title, s.PVType, s.PeakPower(), s.Location.Lon(), s.Location.Lat())
		}
		return nil
	})
}

func runPVSystemUUIDs(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	names, err := pvsystem.UUIDs(cmd.Context(), client)
	if err != nil {
		return err
	}

	return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).print(names, func(w io.Writer) error {
		fmt.Fprintln(w, "UUID\tNAME")
		for _, id := range slices.Sorted(maps.Keys(names)) {
			fmt.Fprintf(w, "%s\t%s\n", id, names[id])
		}
		return nil
	})
}

func runPVSystemGet(cmd *cobra.Command, args []string) error {
	id, err := parseUUID(args[0])
	if err != nil {
		return err
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	system, err := pvsystem.Get(cmd.Context(), client, id)
	if err != nil {
		return err
	}

	return printSystem(cmd.OutOrStdout(), system)
}

func printSystem(out io.Writer, s *pvsystem.PVSystem) error {
	return newPrinter(out, cfg.Output.Format).print(s, func(w io.Writer) error {
		fmt.Fprintf(w, "UUID:\t%s\n", s.UUID)
		fmt.Fprintf(w, "Name:\t%s\n", s.Name)
		fmt.Fprintf(w, "Title:\t%s\n", s.Title)
		fmt.Fprintf(w, "Location:\t%g, %g\n", s.Location.Lon(), s.Location.Lat())
		fmt.Fprintf(w, "Altitude:\t%g m\n", s.Altitude)
		fmt.Fprintf(w, "Type:\t%s\n", s.PVType)
		fmt.Fprintf(w, "Installed:\t%s\n", s.ExpertParams.InstallationDate)
		fmt.Fprintf(w, "Peak power:\t%g W\n", s.PeakPower())
		fmt.Fprintf(w, "Requested fields:\t%v\n", s.RequestedFields)
		for _, a := range s.ExpertParams.Arrays {
			fmt.Fprintf(w, "Array %d:\t%g W, orientation %g°, inclination %g°, %s %s\n",
				a.ID, a.PVModulesPdc0, a.Orientation, a.Inclination, a.ModuleMaterial, a.ModuleTechnology)
		}
		return nil
	})
}

func runPVSystemCreate(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	system, err := pvsystem.Create(cmd.Context(), client, createName, pvsystem.NewPoint(createLon, createLat), createPdc0,
		pvsystem.WithOrientation(createOrientation),
		pvsystem.WithInclination(createInclination),
	)
	if err != nil {
		return err
	}

	logger.Info().
		Str("uuid", system.UUID.String()).
		Str("name", system.Name).
		Msg("PV system created")

	return printSystem(cmd.OutOrStdout(), system)
}

func runPVSystemRename(cmd *cobra.Command, args []string) error {
	id, err := parseUUID(args[0])
	if err != nil {
		return err
	}
	name := strings.TrimSpace(args[1])
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	system, err := pvsystem.Get(cmd.Context(), client, id)
	if err != nil {
		return err
	}

	oldName := system.Name
	system.Name = name
	system.Title = name

	if _, err := system.SaveChanges(cmd.Context(), client); err != nil {
		return err
	}

	logger.Info().
		Str("uuid", id.String()).
		Str("from", oldName).
		Str("to", name).
		Msg("PV system renamed")

	return printSystem(cmd.OutOrStdout(), system)
}

func runPVSystemDelete(cmd *cobra.Command, args []string) error {
	id, err := parseUUID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete PV system %s? This cannot be undone. [y/N]: ", id)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			logger.Info().Msg("Deletion cancelled")
			return nil
		}
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	resp, err := pvsystem.Delete(cmd.Context(), client, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Message())
	return nil
}
