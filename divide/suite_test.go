package divide_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDivide(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Divide Suite")
}
