package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"profiler-go/internal/app"
	"profiler-go/internal/model"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp resolves defaults and creates an App. The caller must defer
// a.Close(). operation identifies the CLI command being run (e.g.
// "CreateProfile", "ExportProfile").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	a, err := app.New(defaults["settings_path"], defaults["log_dir"], operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// listFields are metadata keys edited as whole lists; their CLI values are
// comma-separated.
var listFields = []string{"email", "social_medias"}

// metadataValue converts a raw CLI value into the stored field value.
func metadataValue(key, raw string) any {
	if !slices.Contains(listFields, key) {
		return raw
	}
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// settingsValue parses a raw CLI value as JSON when possible so numbers
// stay numbers, falling back to a plain string.
func settingsValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Filesystem-backed profile and album manager",
}

// settings commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "View settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListSettings")
		if err != nil {
			return err
		}
		defer a.Close()

		return printJSON(a.Settings())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Update a settings key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateSettings")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := a.UpdateSettings(map[string]any{args[0]: settingsValue(args[1])})
		if err != nil {
			return fmt.Errorf("updating settings: %w", err)
		}
		return printJSON(cfg)
	},
}

// profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListProfiles")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListProfiles()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles.")
			return nil
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		a, err := newApp("CreateProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		// Creating over an existing profile would rewrite its metadata
		// document, so refuse a taken name up front.
		existing, err := a.ListProfiles()
		if err != nil {
			return err
		}
		if slices.Contains(existing, name) {
			return fmt.Errorf("profile %q already exists", name)
		}

		path, err := a.CreateProfile(name, nil)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		fmt.Printf("Created profile %s at %s\n", name, path)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "View profile metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ReadMetadata")
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.ReadMetadata(args[0])
		if err != nil {
			return err
		}
		if data == nil {
			fmt.Printf("Profile %q has no metadata.\n", args[0])
			return nil
		}
		return printJSON(data)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set NAME KEY VALUE",
	Short: "Update a profile metadata field",
	Long: "Update a single metadata field. List fields (email, social_medias)\n" +
		"take comma-separated values and are replaced as a whole.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateMetadata")
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.UpdateMetadata(args[0], model.Metadata{args[1]: metadataValue(args[1], args[2])})
		if err != nil {
			return fmt.Errorf("updating metadata: %w", err)
		}
		return printJSON(data)
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a profile and all its albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.DeleteProfile(args[0])
		if err != nil {
			return fmt.Errorf("deleting profile: %w", err)
		}
		if !removed {
			fmt.Printf("No profile named %q.\n", args[0])
			return nil
		}
		fmt.Printf("Deleted profile %s\n", args[0])
		return nil
	},
}

// album commands
var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumListCmd = &cobra.Command{
	Use:   "list PROFILE",
	Short: "List a profile's albums",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListAlbums")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListAlbums(args[0])
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No albums.")
			return nil
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var albumCreateCmd = &cobra.Command{
	Use:   "create PROFILE ALBUM",
	Short: "Create an album (nested paths allowed, e.g. photos/2024)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CreateAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.CreateAlbum(args[0], args[1])
		if err != nil {
			return fmt.Errorf("creating album: %w", err)
		}
		fmt.Printf("Created album at %s\n", path)
		return nil
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete PROFILE ALBUM",
	Short: "Delete an album and all its files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteAlbum")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.DeleteAlbum(args[0], args[1])
		if err != nil {
			return fmt.Errorf("deleting album: %w", err)
		}
		if !removed {
			fmt.Printf("No album %q in profile %q.\n", args[1], args[0])
			return nil
		}
		fmt.Printf("Deleted album %s\n", args[1])
		return nil
	},
}

var albumLsCmd = &cobra.Command{
	Use:   "ls PROFILE ALBUM",
	Short: "List files in an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListAlbumEntries")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.ListAlbumEntries(args[0], args[1])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Empty album.")
			return nil
		}
		for _, e := range entries {
			if e.IsFolder {
				fmt.Printf("%-10s  %10s  %s\n", e.Type, "-", e.Name)
				continue
			}
			fmt.Printf("%-10s  %10d  %s\n", e.Type, *e.Size, e.Name)
		}
		return nil
	},
}

var albumUploadCmd = &cobra.Command{
	Use:   "upload PROFILE ALBUM FILE",
	Short: "Copy a file into an album",
	Long: "Copy a file into an album, keeping its base filename.\n" +
		"An existing file of the same name is overwritten.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UploadFile")
		if err != nil {
			return err
		}
		defer a.Close()

		dest, err := a.UploadFile(args[0], args[1], args[2])
		if err != nil {
			return fmt.Errorf("uploading file: %w", err)
		}
		fmt.Printf("Uploaded to %s\n", dest)
		return nil
	},
}

var albumRmCmd = &cobra.Command{
	Use:   "rm PROFILE ALBUM FILE",
	Short: "Delete a file from an album",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteAlbumFile")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.DeleteAlbumFile(args[0], args[1], args[2])
		if err != nil {
			return fmt.Errorf("deleting file: %w", err)
		}
		if !removed {
			fmt.Printf("No file %q in album %q.\n", args[2], args[1])
			return nil
		}
		fmt.Printf("Deleted %s\n", args[2])
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export PROFILE ARCHIVE",
	Short: "Export a profile to a zip archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		t := a.ExportProfile(args[0], args[1])
		path, err := t.Wait()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Exported %s to %s\n", args[0], path)
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import ARCHIVE",
	Short: "Import a profile from a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		a, err := newApp("ImportProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		t := a.ImportProfile(args[0], name)
		path, err := t.Wait()
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported profile at %s\n", path)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	albumCmd.AddCommand(albumListCmd)
	albumCmd.AddCommand(albumCreateCmd)
	albumCmd.AddCommand(albumDeleteCmd)
	albumCmd.AddCommand(albumLsCmd)
	albumCmd.AddCommand(albumUploadCmd)
	albumCmd.AddCommand(albumRmCmd)

	importCmd.Flags().StringP("name", "n", "", "Target profile name (default: archive filename)")

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
