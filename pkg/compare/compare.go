// Package compare implements the pluggable file-equality check used during
// destination reconciliation. The only provided implementation, Content,
// performs a size check followed by a lockstep byte comparison; it exists
// as an interface so that a cheaper (and weaker) comparator, such as one
// based on modification time and size, can be substituted without touching
// the sync engine.
package compare

import (
	"bufio"
	"io"
	"os"
)

// Method compares two files, identified by path, for equality. It returns an
// I/O error if either file cannot be opened or read; the caller should treat
// a non-nil error as "comparison could not be performed" rather than "files
// differ".
type Method interface {
	SameFile(a, b string) (bool, error)
}

// contentCompareBufferSize is the size of the buffered reader used for each
// side of the byte-by-byte comparison.
const contentCompareBufferSize = 32 * 1024

// Content compares files by size, then by byte content. It is the default,
// and only provided, Method.
type Content struct{}

// SameFile implements Method.SameFile. It opens both files, ensuring both
// are closed on every exit path, compares their sizes via a Stat call, and
// if those match, streams both files in fixed-size chunks, returning false
// as soon as a differing byte is found.
func (Content) SameFile(a, b string) (bool, error) {
	fileA, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fileA.Close()

	fileB, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fileB.Close()

	infoA, err := fileA.Stat()
	if err != nil {
		return false, err
	}
	infoB, err := fileB.Stat()
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	readerA := bufio.NewReaderSize(fileA, contentCompareBufferSize)
	readerB := bufio.NewReaderSize(fileB, contentCompareBufferSize)

	bufA := make([]byte, contentCompareBufferSize)
	bufB := make([]byte, contentCompareBufferSize)
	for {
		nA, errA := io.ReadFull(readerA, bufA)
		nB, errB := io.ReadFull(readerB, bufB)

		if nA != nB {
			return false, nil
		}
		if nA > 0 {
			if string(bufA[:nA]) != string(bufB[:nB]) {
				return false, nil
			}
		}

		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if doneA && doneB {
			return true, nil
		}
		if doneA != doneB {
			return false, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			return false, errB
		}
	}
}
