// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/h1bctl/internal/meta"
)

const bashCompletionScript = `# bash completion for h1bctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_h1bctl()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local opts="--titles -t --cities -c --year -y --cutoff --use-cache -u --show --output -o --attrs -a --color --no-color --headings --no-headings --limit -l --publish --tldr --version -v --help completion"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml csv" -- "$cur") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        --year|-y|--cutoff|--limit|-l|--publish|--attrs|-a)
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _h1bctl h1bctl
`

const zshCompletionScript = `#compdef h1bctl

_h1bctl() {
  if [[ $words[2] == completion ]]; then
    _arguments '2: :((bash zsh))'
    return
  fi

  _arguments -C \
    '*'{-t,--titles}'[job title patterns]:titles' \
    '*'{-c,--cities}'[cities to search]:cities' \
    '(-y --year)'{-y,--year}'[filing year]:year' \
    '--cutoff[minimum base salary]:salary' \
    '(-u --use-cache)'{-u,--use-cache}'[reuse cached raw data]' \
    '--show[print the filtered data]' \
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml csv)' \
    '(-a --attrs)'{-a,--attrs}'[columns shown by --show]:attrs' \
    '(--color --no-color)'{--color,--no-color}'[colored text output]' \
    '(--headings --no-headings)'{--headings,--no-headings}'[column headings]' \
    '(-l --limit)'{-l,--limit}'[rows shown]:limit' \
    '--publish[mirror to s3]:target' \
    '--tldr[show tldr page]' \
    '(-v --version)'{-v,--version}'[version info]' \
    '1::command:(completion)'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _h1bctl h1bctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	out := consoleOut(GetMeta(cmd))

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(out, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(out, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: h1bctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "h1bctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
