package auth

import (
	"crypto/sha1"
	"crypto/sha256"

	"github.com/meoying/dbclient/internal/errs"
	"github.com/meoying/dbclient/mysql/internal/packet"
)

// Response 根据插件名计算握手响应里的 auth_response
// 未知插件在写出任何字节之前就失败
func Response(plugin string, password string, scramble []byte) ([]byte, error) {
	switch plugin {
	case packet.AuthNativePassword:
		// 只用 scramble 的前 20 个字节
		if len(scramble) > 20 {
			scramble = scramble[:20]
		}
		return ScramblePassword(scramble, password), nil
	case packet.AuthCachingSha2Password:
		return ScrambleSHA256Password(scramble, password), nil
	default:
		return nil, errs.NewErrUnsupportedAuthPlugin(plugin)
	}
}

// ScramblePassword mysql_native_password 的挑战响应
// token = SHA1(scramble + SHA1(SHA1(password))) XOR SHA1(password)
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_connection_phase_authentication_methods_native_password_authentication.html
func ScramblePassword(scramble []byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	// stage1 = SHA1(password)
	crypt := sha1.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	// innerHash = SHA1(stage1)
	crypt.Reset()
	crypt.Write(stage1)
	hash := crypt.Sum(nil)

	// outerHash = SHA1(scramble + innerHash)
	crypt.Reset()
	crypt.Write(scramble)
	crypt.Write(hash)
	token := crypt.Sum(nil)

	// token XOR stage1
	for i := range token {
		token[i] ^= stage1[i]
	}
	return token
}

// ScrambleSHA256Password caching_sha2_password 的挑战响应
// XOR(SHA256(password), SHA256(SHA256(SHA256(password)), scramble))
// https://dev.mysql.com/blog-archive/preparing-your-community-connector-for-mysql-8-part-2-sha256/
func ScrambleSHA256Password(scramble []byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	crypt := sha256.New()
	crypt.Write([]byte(password))
	message1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(message1)
	message1Hash := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(message1Hash)
	crypt.Write(scramble)
	message2 := crypt.Sum(nil)

	for i := range message1 {
		message1[i] ^= message2[i]
	}
	return message1
}
