/*
Package paramcodec implements the request and response encoding of the
air quality data APIs (zq12369.com, aqistudy.cn).

Requests are wrapped in a signed JSON envelope and passed through a
pipeline of stages, each one of AES-CBC, DES-CBC, Triple DES-CBC or
Base64. Stage order comes from a configuration string such as "32223",
one digit per stage:

	1  AES-CBC, PKCS#7
	2  DES-CBC, PKCS#7
	3  Base64
	4  Triple DES-CBC, PKCS#7

Cipher keys and IVs are cut from the hex MD5 digest of fixed secrets.
Cipher output is framed the way OpenSSL "enc" frames it: Base64 of the
ciphertext. Responses are decoded by running the stages backwards.

The keys are public constants, so the encoding hides nothing from
anyone who has them. The algorithms live in subpackages: pcbase64,
pcmd5, pcdes, pcaes, pcmode and pcopenssl.
*/
package paramcodec
