package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/icon"
	"github.com/dmp-client/dmpcfg/settings"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const defaultPort = 6702

func init() {
	rootCmd.AddCommand(serversCmd)
}

// serversCmd groups the server list commands.
var serversCmd = &cobra.Command{
	Use:     "servers",
	Short:   "Manage the list of known servers",
	Aliases: []string{"server"},
}

func printServers(cmd *cobra.Command, servers []settings.ServerEntry, indexes []int) {
	name := style.New().Bold(true).Foreground(color.Key).Render
	for i, server := range servers {
		cmd.Printf(
			"%s %s %s\n",
			style.Faint(fmt.Sprintf("%3d", indexes[i]+1)),
			name(server.Name),
			style.Fg(color.Value)(net.JoinHostPort(server.Address, strconv.Itoa(server.Port))),
		)
	}
}

func init() {
	serversCmd.AddCommand(serversListCmd)
	serversListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	serversListCmd.SetOut(os.Stdout)
}

var serversListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List known servers in their saved order",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		_, s, _ := load(cmd)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(s.Servers))
			return
		}

		if len(s.Servers) == 0 {
			cmd.Println(style.Faint("no servers"))
			return
		}

		printServers(cmd, s.Servers, lo.Range(len(s.Servers)))
	},
}

func validatePort(answer any) error {
	port, err := strconv.Atoi(fmt.Sprint(answer))
	if err != nil || port < 0 || port > 65535 {
		return errors.New("want a port number between 0 and 65535")
	}
	return nil
}

func init() {
	serversCmd.AddCommand(serversAddCmd)
}

var serversAddCmd = &cobra.Command{
	Use:   "add [name] [address] [port]",
	Short: "Add a server, asking for anything not given",
	Args:  cobra.MaximumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		answers := struct {
			Name    string
			Address string
			Port    string
		}{Port: strconv.Itoa(defaultPort)}

		var questions []*survey.Question
		for i, q := range []*survey.Question{
			{Name: "name", Prompt: &survey.Input{Message: "Server name:"}, Validate: survey.Required},
			{Name: "address", Prompt: &survey.Input{Message: "Address:"}, Validate: survey.Required},
			{Name: "port", Prompt: &survey.Input{Message: "Port:", Default: answers.Port}, Validate: validatePort},
		} {
			if i < len(args) {
				continue
			}
			questions = append(questions, q)
		}

		if len(questions) > 0 {
			handleErr(survey.Ask(questions, &answers))
		}

		for i, arg := range args {
			switch i {
			case 0:
				answers.Name = arg
			case 1:
				answers.Address = arg
			case 2:
				handleErr(validatePort(arg))
				answers.Port = arg
			}
		}

		manager, s, _ := load(cmd)
		server := settings.ServerEntry{
			Name:    answers.Name,
			Address: answers.Address,
			Port:    lo.Must(strconv.Atoi(answers.Port)),
		}
		s.Servers = append(s.Servers, server)
		handleErr(manager.Save(s))

		success("added %s %s", icon.Get(icon.Server), style.Fg(color.Key)(server.Name))
	},
}

func init() {
	serversCmd.AddCommand(serversRemoveCmd)
	serversRemoveCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var serversRemoveCmd = &cobra.Command{
	Use:     "remove [number]",
	Short:   "Remove a server by its list number, or pick one interactively",
	Aliases: []string{"rm"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager, s, _ := load(cmd)
		if len(s.Servers) == 0 {
			handleErr(errors.New("there are no servers to remove"))
		}

		var index int
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > len(s.Servers) {
				handleErr(fmt.Errorf("want a server number between 1 and %d", len(s.Servers)))
			}
			index = n - 1
		} else {
			options := lo.Map(s.Servers, func(server settings.ServerEntry, i int) string {
				return fmt.Sprintf("%d. %s (%s)", i+1, server.Name, net.JoinHostPort(server.Address, strconv.Itoa(server.Port)))
			})
			handleErr(survey.AskOne(&survey.Select{Message: "Remove which server?", Options: options}, &index))
		}

		server := s.Servers[index]
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Remove %s?", server.Name),
				Default: false,
			}, &confirmed))
			if !confirmed {
				return
			}
		}

		s.Servers = append(s.Servers[:index], s.Servers[index+1:]...)
		handleErr(manager.Save(s))

		success("removed %s", style.Fg(color.Key)(server.Name))
	},
}

func init() {
	serversCmd.AddCommand(serversFindCmd)
	serversFindCmd.SetOut(os.Stdout)
}

var serversFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy search servers by name or address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, s, _ := load(cmd)

		matches := findServers(args[0], s.Servers)
		if len(matches) == 0 {
			cmd.Println(style.Faint("no matching servers"))
			return
		}

		printServers(
			cmd,
			lo.Map(matches, func(i int, _ int) settings.ServerEntry { return s.Servers[i] }),
			matches,
		)
	},
}

// findServers returns the indexes of servers whose name or address fuzzily
// matches query, best match first.
func findServers(query string, servers []settings.ServerEntry) []int {
	best := make(map[int]int)
	for _, targets := range [][]string{
		lo.Map(servers, func(s settings.ServerEntry, _ int) string { return s.Name }),
		lo.Map(servers, func(s settings.ServerEntry, _ int) string { return s.Address }),
	} {
		for _, rank := range fuzzy.RankFindNormalizedFold(query, targets) {
			if d, ok := best[rank.OriginalIndex]; !ok || rank.Distance < d {
				best[rank.OriginalIndex] = rank.Distance
			}
		}
	}

	indexes := lo.Keys(best)
	sort.Slice(indexes, func(i, j int) bool {
		a, b := indexes[i], indexes[j]
		if best[a] != best[b] {
			return best[a] < best[b]
		}
		return a < b
	})

	return indexes
}
