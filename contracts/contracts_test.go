package contracts

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func validFS(t testing.TB) fstest.MapFS {
	_fs := fstest.MapFS{}

	for _, dir := range []string{tokenDir, contentDir, peeringDir} {
		_, bNEF := anyValidNEF(t, dir)
		_, jManifest := anyValidManifest(t, dir)

		_fs[dir+"/"+nefName] = &fstest.MapFile{Data: bNEF}
		_fs[dir+"/"+manifestName] = &fstest.MapFile{Data: jManifest}
	}

	return _fs
}

func TestRead(t *testing.T) {
	s, err := Read(validFS(t))
	require.NoError(t, err)

	require.Equal(t, tokenDir, s.Token.Manifest.Name)
	require.Equal(t, contentDir, s.Content.Manifest.Name)
	require.Equal(t, peeringDir, s.Peering.Manifest.Name)

	expNEF, _ := anyValidNEF(t, peeringDir)
	require.Equal(t, expNEF.Checksum, s.Peering.NEF.Checksum)
	require.Equal(t, expNEF.Script, s.Peering.NEF.Script)
}

func TestReadMissingFiles(t *testing.T) {
	_fs := validFS(t)

	delete(_fs, contentDir+"/"+nefName)
	_, err := Read(_fs)
	require.Error(t, err)

	_fs = validFS(t)

	delete(_fs, peeringDir+"/"+manifestName)
	_, err = Read(_fs)
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	_fs := validFS(t)

	_fs[tokenDir+"/"+nefName] = &fstest.MapFile{Data: []byte("not a NEF")}
	_, err := Read(_fs)
	require.ErrorIs(t, err, errInvalidNEF)

	_fs = validFS(t)

	_fs[tokenDir+"/"+manifestName] = &fstest.MapFile{Data: []byte("not a manifest")}
	_, err = Read(_fs)
	require.ErrorIs(t, err, errInvalidManifest)
}

func anyValidNEF(tb testing.TB, seed string) (nef.File, []byte) {
	script := make([]byte, 32)
	copy(script, seed)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
