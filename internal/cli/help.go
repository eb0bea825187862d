package cli

import "fmt"

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintf(c.Out, `
  Usage:        %s <command> [arguments]

  Commands:

    %s      [app]            Deploy the current folder to Structure
                [--type=X]       ↳  Optional: `+"`express`, `flask`, `docker` or `static`"+`
                [--quiet | -q]   ↳  Optional: Don't stream deployment logs

    create                       Create an empty app
    list                         List all apps
    ui                           Open the interactive apps dashboard
    pull        [app]            Download an app's deployed source

    remove      [app...]         Remove existing apps

    logs        [app]            View a running app's logs
                [--stream | -s]  ↳  Optional: Stream deployment logs

    run         [app]            Run an app
    stop        [app]            Stop an app
    reload      [app]            Restart and rebuild an app

    ssh         [app]            Open a shell in a running app
    ssh-add     [app]            Authorize your public key for SSH
                [--path=X]       ↳  Optional: Key to upload (default ~/.ssh/id_rsa.pub)

    login                        Log in to your Structure account
    logout                       Log out
    token                        See your API token
    version                      See the Structure CLI version

  --------------

  Documentation and tutorials: %s

  Examples:

    - Deploy the project in the current directory
      $ structure deploy hello-world --type=static

    - Run an existing app:
      $ structure run hello-world

`, c.green("structure"), c.green("deploy"), c.green("https://docs.structure.sh"))
}
