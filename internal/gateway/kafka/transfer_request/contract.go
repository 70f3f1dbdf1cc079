//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=transfer_request_test
package transfer_request

import "github.com/IBM/sarama"

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}
