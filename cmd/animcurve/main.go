// Command animcurve samples, renders and inspects animation curve documents.
package main

func main() {
	Execute()
}
