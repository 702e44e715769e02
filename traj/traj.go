// Package traj reads and writes compressed geometry paths: sequences
// of Cartesian frames over a fixed set of atoms, such as the steps of
// an optimization or the images of a reaction pathway. The format is
// plain text under a general-purpose compressor, one "x y z" line per
// atom and a "*" line closing each frame, after a "** natoms" header.
// The file name picks the compressor: a name ending in 'g' means gzip,
// anything else zstd.
package traj

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/v4m4/pts"
	v3 "github.com/v4m4/pts/v3"
)

// Writer writes a geometry path to a compressed file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	frames    int
}

// NewWriter creates the named file and readies it for frames of natoms
// atoms. The optional compression level applies to gzip files only;
// zstd always compresses at its best level.
func NewWriter(name string, natoms int, compressionLevel ...int) (*Writer, error) {
	level := gzip.BestCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(name)[len(name)-1] == 'g' {
		W.h, err = gzip.NewWriterLevel(W.f, level)
		if err != nil {
			W.f.Close()
			return nil, Error{"can't set up the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
		}
	} else {
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			W.f.Close()
			return nil, Error{"can't set up the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
		}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	fmt.Fprintf(W.h, "** %d\n", W.natoms)
	return W, nil
}

// WNext appends one frame to the path.
func (W *Writer) WNext(coord *v3.Matrix) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != W.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, W.natoms), W.filename, []string{"WNext"}, true}
	}
	for i := 0; i < v; i++ {
		fmt.Fprintf(W.h, "%.10f %.10f %.10f\n", coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
	}
	fmt.Fprintf(W.h, "*\n")
	W.frames++
	return nil
}

// Close flushes and closes the file. The writer can not be used after
// this call.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int {
	return W.natoms
}

// Frames returns the number of frames written so far.
func (W *Writer) Frames() int {
	return W.frames
}

// Reader reads a geometry path from a compressed file.
type Reader struct {
	f        *os.File
	comp     io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	readable bool
}

//zstd.Decoder has a Close without an error return, so it can not serve
//as an io.ReadCloser by itself.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

// New opens a geometry path for reading and checks its header.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.natoms = -1
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(name)[len(name)-1] == 'g' {
		R.comp, err = gzip.NewReader(bufio.NewReader(R.f))
	} else {
		var d *zstd.Decoder
		d, err = zstd.NewReader(bufio.NewReader(R.f))
		if err == nil {
			R.comp = zstdql{d.Close, d}
		}
	}
	if err != nil {
		R.f.Close()
		return nil, Error{"can't set up the decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.comp)
	str, err := R.h.ReadString('\n')
	if err != nil {
		return nil, Error{"can't read the header: " + err.Error(), name, []string{"New"}, true}
	}
	fields := strings.Fields(str)
	if len(fields) != 2 || fields[0] != "**" {
		return nil, Error{WrongFormat + ": bad header " + strings.TrimSpace(str), name, []string{"New"}, true}
	}
	R.natoms, err = strconv.Atoi(fields[1])
	if err != nil {
		return nil, Error{"can't read the atom number from " + fields[1], name, []string{"New"}, true}
	}
	R.readable = true
	return R, nil
}

// Readable returns true if it is possible to call Next on the reader.
func (R *Reader) Readable() bool {
	return R.readable
}

// Next puts the coordinates of the next frame in c, or reads and
// discards a frame if c is nil. At the end of the path it closes the
// reader and returns an error satisfying pts.LastFrameError, which
// signals normal termination rather than failure.
func (R *Reader) Next(c *v3.Matrix) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	for i := 0; i < R.natoms; i++ {
		line, err := R.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && i == 0 && strings.TrimSpace(line) == "" {
				R.Close()
				return newLastFrameError(R.filename, "Next")
			}
			return Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return Error{WrongFormat + ": bad coordinate line " + strings.TrimSpace(line), R.filename, []string{"Next"}, true}
		}
		for j, v := range fields {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Error{WrongFormat + ": bad coordinate " + v, R.filename, []string{"Next"}, true}
			}
			if c != nil {
				c.Set(i, j, f)
			}
		}
	}
	term, err := R.h.ReadString('\n')
	if err != nil && err != io.EOF {
		return Error{"can't read the frame termination mark: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if len(term) == 0 || term[0] != '*' {
		return Error{WrongFormat + ": missing frame termination mark", R.filename, []string{"Next"}, true}
	}
	return nil
}

// NextConc reads as many frames as frames has elements, discarding
// those whose element is nil, and returns one channel per frame through
// which that frame will be delivered. Reading happens in order before
// the call returns; the channels let the caller hand each frame to a
// concurrent consumer.
func (R *Reader) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !R.Readable() {
		return nil, Error{TrajUnIniRead, R.filename, []string{"NextConc"}, true}
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := R.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, framechans[key])
	}
	return framechans, nil
}

// Close closes the reader and marks it unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.comp.Close()
	R.f.Close()
	R.readable = false
}

// Len returns the number of atoms in each frame of the path.
func (R *Reader) Len() int {
	return R.natoms
}

//errDecorate asserts that the error implements pts.Error and decorates
//it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(pts.Error)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for geometry path errors. It fulfills
// pts.Error and pts.TrajError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("path file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file the failing path was associated with.
func (err Error) FileName() string { return err.filename }

// Format returns the format associated to the error, always "ptj".
func (err Error) Format() string { return "ptj" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "path object uninitialized to read"
	TrajUnIniWrite = "path object uninitialized to write"
	ReadError      = "error reading frame"
	NilCoordinates = "given nil coordinates"
	WrongFormat    = "wrong format in the path file or frame"
)

//lastFrameError implements pts.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing, it only marks the type.
func (e lastFrameError) NormalLastFrameTermination() {}

func (e lastFrameError) FileName() string { return e.fileName }

func (e lastFrameError) Error() string { return "EOF" }

func (e lastFrameError) Critical() bool { return false }

func (e lastFrameError) Format() string { return "ptj" }

func (e lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
