// internal/spam/fingerprint.go
package spam

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"
)

const saltSize = 16

// Generator は送信者IDから入れ替わり型の匿名トークンを導出します。
// トークンは洪水制御とスパム掃除のためのキーであり、ソルトのローテーション後は
// 同一送信者でも過去のトークンと結び付けられなくなります (プロセス再起動でも同様)。
//
// ソルトとタイムスタンプは複数の更新ゴルーチンから共有されるため、
// Generate 1回分の read-check-rotate-hash をミューテックスで排他します。
// ロック中にI/Oは行いません
type Generator struct {
	mu        sync.Mutex
	rotation  time.Duration
	rotatedAt time.Time
	salt      [saltSize]byte

	now func() time.Time // テストで差し替える
}

// New は新しいランダムソルトを持つジェネレーターを作成します
func New(rotation time.Duration) *Generator {
	g := &Generator{
		rotation: rotation,
		now:      time.Now,
	}
	g.salt = newSalt()
	g.rotatedAt = g.now()
	return g
}

// Generate は送信者の64文字(16進)トークンを返します。
// 同一ローテーション期間内なら同じ送信者に対して常に同じ値
func (g *Generator) Generate(senderID int64) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	// 遅延ローテーション: タイマーではなく呼び出し毎にチェックする
	if g.now().Sub(g.rotatedAt) > g.rotation {
		g.salt = newSalt()
		g.rotatedAt = g.now()
	}

	h := sha256.New()
	h.Write(g.salt[:])

	var id [8]byte
	binary.BigEndian.PutUint64(id[:], uint64(senderID))
	h.Write(id[:])

	return hex.EncodeToString(h.Sum(nil))
}

func newSalt() [saltSize]byte {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		// crypto/rand が失敗するのはOS乱数源が壊れている場合のみ
		panic("spam: crypto/rand failed: " + err.Error())
	}
	return salt
}
