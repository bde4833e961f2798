package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrpop completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  qrpop completion bash > /usr/local/etc/bash_completion.d/qrpop\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  qrpop completion zsh > \"${fpath[1]}/_qrpop\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  qrpop completion fish > ~/.config/fish/completions/qrpop.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	script, err := completionScript(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(script)
}

func completionScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return generateBashCompletion(), nil
	case "zsh":
		return generateZshCompletion(), nil
	case "fish":
		return generateFishCompletion(), nil
	}
	return "", fmt.Errorf("unsupported shell %q (use bash, zsh, or fish)", shell)
}

func generateBashCompletion() string {
	return `# bash completion for qrpop                              -*- shell-script -*-

_qrpop() {
    local cur prev words cword
    _init_completion || return

    local commands="gen history serve completion version help"

    local tui_flags="--level --theme --version"
    local gen_flags="--level --out --no-history --print"
    local history_flags="--json --clear"
    local serve_flags="--port --level --cors-origin --no-history"

    local levels="L M Q H"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        if [[ "${cur}" == -* ]]; then
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        fi
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --level)
            COMPREPLY=($(compgen -W "${levels}" -- "${cur}"))
            return
            ;;
        --out)
            _filedir png
            return
            ;;
        --port|--cors-origin|--theme)
            return
            ;;
    esac

    case "${command}" in
        gen)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${gen_flags}" -- "${cur}"))
            fi
            ;;
        history)
            COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            ;;
        serve)
            COMPREPLY=($(compgen -W "${serve_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _qrpop qrpop
`
}

func generateZshCompletion() string {
	return `#compdef qrpop

# zsh completion for qrpop

_qrpop() {
    local -a commands
    commands=(
        'gen:Generate a QR code PNG from text'
        'history:List or clear the saved history'
        'serve:Serve QR codes and history over HTTP'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--level[Error correction level]:level:(L M Q H)' \
        '--theme[Color theme]:theme:' \
        '--version[Print version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'qrpop commands' commands
            ;;
        args)
            case $words[1] in
                gen)
                    _arguments \
                        '--level[Error correction level]:level:(L M Q H)' \
                        '--out[Output PNG path, or - for stdout]:output file:_files -g "*.png"' \
                        '--no-history[Do not record the text in history]' \
                        '--print[Also print the symbol to the terminal]' \
                        '*:text:'
                    ;;
                history)
                    _arguments \
                        '--json[Print history as JSON]' \
                        '--clear[Remove all saved entries]'
                    ;;
                serve)
                    _arguments \
                        '--port[Port to listen on]:port:' \
                        '--level[Default error correction level]:level:(L M Q H)' \
                        '--cors-origin[Access-Control-Allow-Origin header value]:origin:' \
                        '--no-history[Do not record or serve history]'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_qrpop "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for qrpop

# Disable file completions by default
complete -c qrpop -f

# Subcommands
complete -c qrpop -n '__fish_use_subcommand' -a gen -d 'Generate a QR code PNG from text'
complete -c qrpop -n '__fish_use_subcommand' -a history -d 'List or clear the saved history'
complete -c qrpop -n '__fish_use_subcommand' -a serve -d 'Serve QR codes and history over HTTP'
complete -c qrpop -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c qrpop -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c qrpop -n '__fish_use_subcommand' -a help -d 'Show help message'

# TUI flags
complete -c qrpop -n '__fish_use_subcommand' -l level -d 'Error correction level' -ra 'L M Q H'
complete -c qrpop -n '__fish_use_subcommand' -l theme -d 'Color theme' -r
complete -c qrpop -n '__fish_use_subcommand' -l version -d 'Print version and exit'

# gen flags
complete -c qrpop -n '__fish_seen_subcommand_from gen' -l level -d 'Error correction level' -ra 'L M Q H'
complete -c qrpop -n '__fish_seen_subcommand_from gen' -l out -d 'Output PNG path, or - for stdout' -rF
complete -c qrpop -n '__fish_seen_subcommand_from gen' -l no-history -d 'Do not record the text in history'
complete -c qrpop -n '__fish_seen_subcommand_from gen' -l print -d 'Also print the symbol to the terminal'

# history flags
complete -c qrpop -n '__fish_seen_subcommand_from history' -l json -d 'Print history as JSON'
complete -c qrpop -n '__fish_seen_subcommand_from history' -l clear -d 'Remove all saved entries'

# serve flags
complete -c qrpop -n '__fish_seen_subcommand_from serve' -l port -d 'Port to listen on' -r
complete -c qrpop -n '__fish_seen_subcommand_from serve' -l level -d 'Default error correction level' -ra 'L M Q H'
complete -c qrpop -n '__fish_seen_subcommand_from serve' -l cors-origin -d 'Access-Control-Allow-Origin header value' -r
complete -c qrpop -n '__fish_seen_subcommand_from serve' -l no-history -d 'Do not record or serve history'

# completion - shell names
complete -c qrpop -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
