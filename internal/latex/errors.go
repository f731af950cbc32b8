package latex

import "errors"

var (
	// ErrLatexmkNotFound indicates the latexmk binary is not on PATH.
	ErrLatexmkNotFound = errors.New("latexmk binary not found")
	// ErrLatexExecutionFailed indicates latexmk exited non-zero.
	ErrLatexExecutionFailed = errors.New("latexmk execution failed")
	// ErrSourceNotFound indicates the configured .tex source does not exist.
	ErrSourceNotFound = errors.New("tex source not found")
	// ErrNoPDFProduced indicates latexmk exited zero but no PDF artifact exists.
	ErrNoPDFProduced = errors.New("no PDF artifact produced")
)
