// Package colorize applies chroma syntax highlighting to disassembly lines
// shown in the code window.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getAssemblyLexer returns an assembly lexer with fallbacks.
func getAssemblyLexer() chroma.Lexer {
	candidates := []string{"armasm", "gas", "nasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getDisasmStyle returns the disassembly style with fallbacks.
func getDisasmStyle() *chroma.Style {
	candidates := []string{"disasm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns a terminal formatter, high-color first.
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Line colorizes a single disassembly line of the form
// "0xaddress\tmnemonic operands", keeping the address in gray and running
// the instruction text through chroma. Colors are disabled entirely with
// EMUDBG_NO_COLOR.
func Line(line string) string {
	if os.Getenv("EMUDBG_NO_COLOR") != "" {
		return line
	}

	parts := strings.SplitN(line, "\t", 2)
	if len(parts) < 2 {
		return colorizeText(line)
	}

	addr := parts[0]
	for _, ch := range strings.TrimPrefix(addr, "0x") {
		if !isHexChar(byte(ch)) {
			return colorizeText(line)
		}
	}

	return fmt.Sprintf("%s\t%s",
		fmt.Sprintf("\033[38;2;79;79;79m%s\033[0m", addr),
		colorizeText(parts[1]))
}

// colorizeText runs one line of assembly through chroma.
func colorizeText(text string) string {
	lexer := getAssemblyLexer()
	if lexer == nil {
		return text
	}

	// Force registration of the custom style.
	_ = DisasmDark

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getDisasmStyle(), iterator); err != nil {
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}

func isHexChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
