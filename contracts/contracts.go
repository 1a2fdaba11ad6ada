/*
Package contracts provides access to compiled Sarafan contracts.

Every contract is expected in its own directory named after the contract
source directory and holding 'contract.nef' and 'manifest.json' files, the
layout produced by the build:

	token/contract.nef
	token/manifest.json
	content/...
	peering/...
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	tokenDir   = "token"
	contentDir = "content"
	peeringDir = "peering"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about Neo contract stored in the file system.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Set groups all Sarafan contracts.
type Set struct {
	Token   Contract
	Content Contract
	Peering Contract
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// Read reads compiled Sarafan contracts from the given file system. Use
// os.DirFS to read the build output directory.
func Read(fsys fs.FS) (Set, error) {
	var (
		res Set
		err error
	)

	for _, c := range []struct {
		dir string
		dst *Contract
	}{
		{tokenDir, &res.Token},
		{contentDir, &res.Content},
		{peeringDir, &res.Peering},
	} {
		*c.dst, err = readContractFromDir(fsys, c.dir)
		if err != nil {
			return res, fmt.Errorf("read contract %s: %w", c.dir, err)
		}
	}

	return res, nil
}

func readContractFromDir(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS paths are always slash-separated, so filepath.Join() is not
	// applicable.
	fNEF, err := fsys.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
