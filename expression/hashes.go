package expression

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	"github.com/c360/semsparql/binding"
	"github.com/c360/semsparql/rdf"
)

func (e *Evaluator) registerHashes() {
	e.operators[KindMD5] = e.digest(md5.New)
	e.operators[KindSHA1] = e.digest(sha1.New)
	e.operators[KindSHA256] = e.digest(sha256.New)
	e.operators[KindSHA384] = e.digest(sha512.New384)
	e.operators[KindSHA512] = e.digest(sha512.New)
}

// digest hashes the UTF-8 string value of the operand and returns the
// lowercase hex digest as a plain literal. A null cell hashes the empty
// string.
func (e *Evaluator) digest(newHash func() hash.Hash) OperatorFunc {
	return func(x *Expression, row binding.Row) (rdf.Term, bool) {
		t, ok := e.value(x.args[0], row)
		if !ok {
			return nil, false
		}
		h := newHash()
		h.Write([]byte(rdf.StringValue(t)))
		return rdf.NewPlainLiteral(hex.EncodeToString(h.Sum(nil))), true
	}
}
