/*
Package cmd - Interactive shell

The shell is a request/response loop: read a line, run one roster
operation, print the outcome. Arguments left off a command are asked for
one at a time, so "add" on its own walks through name and then ID.
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ldamasio/roster/internal/events"
	"github.com/ldamasio/roster/internal/logger"
	"github.com/ldamasio/roster/internal/roster"
)

const (
	publishTimeout = 2 * time.Second
	maxLineBytes   = 64 * 1024
)

var (
	errInvalidInput = errors.New("invalid input")
	errLineTooLong  = errors.New("line too long")
)

const shellHelp = `Commands:
  add [name] [id]       Add a student (name may contain spaces)
  grade [id] [value]    Add a grade between 0 and 100
  view [id]             Show a student's details and average grade
  list                  Show every student
  help                  Show this help
  exit                  Leave the shell (the roster is discarded)`

// shellCmd opens the interactive shell
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive roster shell (default)",
	Long: `Open an interactive shell over a fresh, empty roster.

` + shellHelp + `

With --json every outcome is printed as one JSON object per line and
prompts are suppressed, which makes the shell scriptable:

  printf 'add kingsley 101\ngrade 101 85\nview 101\n' | roster shell --json`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	publisher, err := newPublisher(ctx)
	if err != nil {
		return err
	}
	defer publisher.Close()

	sh := newShell(roster.New(), cmd.InOrStdin(), cmd.OutOrStdout(), publisher, log)
	sh.interactive = !jsonOutput
	sh.asJSON = jsonOutput
	sh.color = !jsonOutput && !cfg.NoColor
	return sh.Run(ctx)
}

// Shell drives one roster from a line-oriented input stream.
type Shell struct {
	roster    *roster.Manager
	in        *bufio.Reader
	out       io.Writer
	publisher events.Publisher
	log       *logger.Logger
	session   string

	// done is set once input is exhausted; readErr keeps a failure other than EOF.
	done    bool
	readErr error

	// interactive prints the banner and prompts; echo repeats each command
	// before its outcome for scripted runs.
	interactive bool
	echo        bool
	asJSON      bool
	color       bool
}

func newShell(r *roster.Manager, in io.Reader, out io.Writer, publisher events.Publisher, log *logger.Logger) *Shell {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	session := uuid.NewString()
	return &Shell{
		roster:    r,
		in:        bufio.NewReaderSize(in, maxLineBytes),
		out:       out,
		publisher: publisher,
		log:       log.With(logger.Session(session)),
		session:   session,
	}
}

// Run processes commands until exit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if s.interactive {
		fmt.Fprintln(s.out, "Roster shell. Type 'help' for commands, 'exit' to quit.")
	}
	s.log.Debug("session started")

	for ctx.Err() == nil && !s.done {
		line, ok := s.ask("> ")
		if !ok {
			continue
		}
		if quit := s.Dispatch(ctx, line); quit {
			break
		}
	}

	s.log.Debug("session ended", logger.Int("students", s.roster.Len()))
	if s.readErr != nil {
		return fmt.Errorf("read input: %w", s.readErr)
	}
	return nil
}

// Dispatch runs a single command line and reports whether the shell should stop.
func (s *Shell) Dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	if s.echo {
		fmt.Fprintf(s.out, "$ %s\n", strings.Join(fields, " "))
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "add":
		s.add(ctx, args)
	case "grade":
		s.grade(ctx, args)
	case "view":
		s.view(args)
	case "list":
		s.list()
	case "help":
		s.print(result{Command: "help", Status: "success", Message: shellHelp})
	case "exit", "quit":
		return true
	default:
		msg := fmt.Sprintf("Unknown command: %s. Type 'help' for a list of commands.", fields[0])
		s.print(newResult(name, msg, errInvalidInput))
	}
	return false
}

func (s *Shell) add(ctx context.Context, args []string) {
	var name, rawID string
	switch len(args) {
	case 0:
		var ok bool
		if name, ok = s.ask("Enter student name: "); !ok {
			return
		}
		if rawID, ok = s.ask("Enter student ID: "); !ok {
			return
		}
	case 1:
		name = args[0]
		var ok bool
		if rawID, ok = s.ask("Enter student ID: "); !ok {
			return
		}
	default:
		name = strings.Join(args[:len(args)-1], " ")
		rawID = args[len(args)-1]
	}

	id, ok := s.parseID("add", rawID)
	if !ok {
		return
	}
	name = strings.TrimSpace(name)

	msg, err := s.roster.AddStudent(name, id)
	s.print(newResult("add", msg, err))
	if err != nil {
		s.log.Info("add rejected", logger.StudentID(id), logger.Err(err))
		return
	}
	s.publish(ctx, events.NewStudentAdded(s.session, id, name))
}

func (s *Shell) grade(ctx context.Context, args []string) {
	if len(args) > 2 {
		s.usage("grade", "grade [id] [value]")
		return
	}
	rawID, rawGrade, ok := s.argsOrAsk(args, "Enter student ID: ", "Enter grade: ")
	if !ok {
		return
	}

	id, ok := s.parseID("grade", rawID)
	if !ok {
		return
	}

	value, msg, err := s.roster.AddGradeToStudentInput(id, rawGrade)
	s.print(newResult("grade", msg, err))
	if err != nil {
		s.log.Info("grade rejected", logger.StudentID(id), logger.Err(err))
		return
	}
	s.publish(ctx, events.NewGradeAdded(s.session, id, value))
}

func (s *Shell) view(args []string) {
	if len(args) > 1 {
		s.usage("view", "view [id]")
		return
	}
	rawID, ok := s.argOrAsk(args, "Enter student ID: ")
	if !ok {
		return
	}

	id, ok := s.parseID("view", rawID)
	if !ok {
		return
	}

	msg, err := s.roster.ViewStudentDetails(id)
	s.print(newResult("view", msg, err))
}

func (s *Shell) list() {
	ids := s.roster.IDs()
	if len(ids) == 0 {
		s.print(result{Command: "list", Status: "success", Message: "No students yet."})
		return
	}
	for _, id := range ids {
		msg, err := s.roster.ViewStudentDetails(id)
		s.print(newResult("list", msg, err))
	}
}

// argOrAsk returns args[0] or prompts for it.
func (s *Shell) argOrAsk(args []string, prompt string) (string, bool) {
	if len(args) > 0 {
		return args[0], true
	}
	return s.ask(prompt)
}

// argsOrAsk returns the first two args, prompting for whichever is missing.
func (s *Shell) argsOrAsk(args []string, firstPrompt, secondPrompt string) (string, string, bool) {
	first, ok := s.argOrAsk(args, firstPrompt)
	if !ok {
		return "", "", false
	}
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	second, ok := s.argOrAsk(rest, secondPrompt)
	if !ok {
		return "", "", false
	}
	return first, second, true
}

// ask prints prompt (interactive only) and reads the next line. It reports
// false when input is exhausted or the line was too long to use.
func (s *Shell) ask(prompt string) (string, bool) {
	if s.interactive {
		fmt.Fprint(s.out, prompt)
	}

	line, err := s.readLine()
	switch {
	case err == nil:
		return line, true
	case errors.Is(err, errLineTooLong):
		msg := fmt.Sprintf("Input line too long (limit %d bytes); ignored.", maxLineBytes)
		s.print(newResult("input", msg, errInvalidInput))
	case errors.Is(err, io.EOF):
		s.done = true
	default:
		s.done = true
		s.readErr = err
	}
	return "", false
}

// readLine returns the next line without its terminator. An over-long line
// is consumed in full and reported as errLineTooLong.
func (s *Shell) readLine() (string, error) {
	line, isPrefix, err := s.in.ReadLine()
	if err != nil {
		return "", err
	}
	if !isPrefix {
		return string(line), nil
	}
	for isPrefix {
		if _, isPrefix, err = s.in.ReadLine(); err != nil {
			break
		}
	}
	return "", errLineTooLong
}

func (s *Shell) usage(command, syntax string) {
	s.print(newResult(command, "Usage: "+syntax, errInvalidInput))
}

func (s *Shell) parseID(command, raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		msg := fmt.Sprintf("Invalid student ID: %q. IDs are whole numbers.", strings.TrimSpace(raw))
		s.print(newResult(command, msg, errInvalidInput))
		return 0, false
	}
	return id, true
}

func (s *Shell) print(r result) {
	if err := printResult(s.out, r, s.asJSON, s.color); err != nil {
		s.log.Error("write output", logger.Err(err))
	}
}

// publish announces e; a failure is logged and otherwise ignored.
func (s *Shell) publish(ctx context.Context, e events.Event) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn("publish event failed",
			logger.String("event", string(e.Type)),
			logger.StudentID(e.StudentID),
			logger.Err(err),
		)
		return
	}
	s.log.Debug("event published", logger.String("event", string(e.Type)), logger.StudentID(e.StudentID))
}
