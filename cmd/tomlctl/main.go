// Command tomlctl edits TOML configuration files in place, keeping their
// comments and layout.
package main

func main() {
	execute()
}
