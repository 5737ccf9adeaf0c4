package mqtt

type Publisher = publisher

func NewSimpleClientWith(client Publisher, encoder Encoder) *SimpleClient {
	return newSimpleClient(client, encoder)
}
