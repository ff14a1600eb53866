package storage

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nurpe/supply-contracts/internal/model"
)

// Sink receives records as they are parsed. ContractRegistry implements it.
type Sink interface {
	AddContract(contract model.SupplyContract)
	AddCustomer(customer model.Customer)
	AddSalesEngineer(engineer model.SalesEngineer)
}

// TextStore keeps the three collections as labeled text files in one directory.
// Writes go straight to the target files; a failed save can leave them partially written.
type TextStore struct {
	dir string
	log zerolog.Logger
}

func NewTextStore(dir string, log zerolog.Logger) *TextStore {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join("src", "data")
	}
	return &TextStore{dir: dir, log: log}
}

func (s *TextStore) Dir() string {
	return s.dir
}

func (s *TextStore) Save(snapshot model.Snapshot) error {
	if snapshot.Empty() {
		return &Error{Kind: ErrNoData}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &Error{Kind: ErrUnreadableFile, File: s.dir, Err: err}
	}

	contracts := make([][]string, 0, len(snapshot.Contracts))
	for _, c := range snapshot.Contracts {
		contracts = append(contracts, encodeContract(c))
	}
	customers := make([][]string, 0, len(snapshot.Customers))
	for _, c := range snapshot.Customers {
		customers = append(customers, encodeCustomer(c))
	}
	engineers := make([][]string, 0, len(snapshot.SalesEngineers))
	for _, e := range snapshot.SalesEngineers {
		engineers = append(engineers, encodeEngineer(e))
	}

	if err := s.writeFile(contractFormat, contracts); err != nil {
		return err
	}
	if err := s.writeFile(customerFormat, customers); err != nil {
		return err
	}
	if err := s.writeFile(engineerFormat, engineers); err != nil {
		return err
	}

	s.log.Debug().
		Str("dir", s.dir).
		Int("contracts", len(contracts)).
		Int("customers", len(customers)).
		Int("engineers", len(engineers)).
		Msg("data saved")
	return nil
}

func (s *TextStore) writeFile(format recordFormat, blocks [][]string) error {
	path := filepath.Join(s.dir, format.file)
	file, err := os.Create(path)
	if err != nil {
		return &Error{Kind: ErrUnreadableFile, File: path, Err: err}
	}
	defer file.Close()

	if err := writeBlocks(file, format, blocks); err != nil {
		return &Error{Kind: ErrUnreadableFile, File: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &Error{Kind: ErrUnreadableFile, File: path, Err: err}
	}
	return nil
}

func writeBlocks(w io.Writer, format recordFormat, blocks [][]string) error {
	bw := bufio.NewWriter(w)
	for _, values := range blocks {
		for i, label := range format.labels {
			if _, err := bw.WriteString(label + ": " + values[i] + "\n"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load appends the stored records onto sink; it never clears what is already there.
// All three files must exist before any of them is parsed. Parsing stops at the first
// malformed record: earlier records stay in sink and the remaining files are skipped.
func (s *TextStore) Load(sink Sink) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Kind: ErrMissingDirectory, File: s.dir}
		}
		return &Error{Kind: ErrUnreadableFile, File: s.dir, Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: ErrMissingDirectory, File: s.dir}
	}

	formats := []recordFormat{contractFormat, customerFormat, engineerFormat}
	files := make([]*os.File, 0, len(formats))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, format := range formats {
		f, err := os.Open(filepath.Join(s.dir, format.file))
		if err != nil {
			return &Error{Kind: ErrUnreadableFile, File: format.file, Err: err}
		}
		files = append(files, f)
	}

	counts := [3]int{}
	if err := readBlocks(files[0], contractFormat, func(values []string) error {
		c, err := decodeContract(values)
		if err != nil {
			return err
		}
		sink.AddContract(c)
		counts[0]++
		return nil
	}); err != nil {
		return err
	}
	if err := readBlocks(files[1], customerFormat, func(values []string) error {
		c, err := decodeCustomer(values)
		if err != nil {
			return err
		}
		sink.AddCustomer(c)
		counts[1]++
		return nil
	}); err != nil {
		return err
	}
	if err := readBlocks(files[2], engineerFormat, func(values []string) error {
		e, err := decodeEngineer(values)
		if err != nil {
			return err
		}
		sink.AddSalesEngineer(e)
		counts[2]++
		return nil
	}); err != nil {
		return err
	}

	s.log.Debug().
		Str("dir", s.dir).
		Int("contracts", counts[0]).
		Int("customers", counts[1]).
		Int("engineers", counts[2]).
		Msg("data loaded")
	return nil
}

// readBlocks scans r for blocks that start with the first label of format.
// The lines following a block start must carry the remaining labels in order.
// Lines have no length limit.
func readBlocks(r io.Reader, format recordFormat, emit func(values []string) error) error {
	reader := bufio.NewReader(r)
	lineNo := 0
	var readErr error
	next := func() (string, bool) {
		if readErr != nil {
			return "", false
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
				return "", false
			}
			readErr = io.EOF
			if line == "" {
				return "", false
			}
		}
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		return strings.TrimSuffix(line, "\r"), true
	}
	failed := func() error {
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return &Error{Kind: ErrUnreadableFile, File: format.file, Line: lineNo + 1, Err: readErr}
		}
		return nil
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		first, ok := fieldValue(line, format.labels[0])
		if !ok {
			continue
		}
		start := lineNo
		values := make([]string, len(format.labels))
		values[0] = first
		for i := 1; i < len(format.labels); i++ {
			line, ok := next()
			if !ok {
				if err := failed(); err != nil {
					return err
				}
				return malformed(format.file, start, "unexpected end of file, missing %q", format.labels[i])
			}
			value, ok := fieldValue(line, format.labels[i])
			if !ok {
				return malformed(format.file, lineNo, "expected %q, got %q", format.labels[i], line)
			}
			values[i] = value
		}
		if err := emit(values); err != nil {
			return malformed(format.file, start, "%v", err)
		}
		// block separator
		next()
	}

	return failed()
}

func fieldValue(line, label string) (string, bool) {
	rest, ok := strings.CutPrefix(line, label+":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
