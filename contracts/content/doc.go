/*
Package content implements Content contract which is a registry of the
published content.

Every publication is identified by a magnet which can be posted only once.
The publisher pays for the storage of the content with SRFN: the fee depends
on the content size, the storage duration and the megabyte-month rate
configured in Token contract. Fees, awards and abuse report charges are pulled
with transferFrom from the allowance the caller has given to Content contract,
so the allowance must be approved in Token contract beforehand.

# Contract notifications

Post notification. It is produced when a new publication is registered.

	Post:
	  - name: publisher
	    type: Hash160
	  - name: magnet
	    type: ByteArray
	  - name: size
	    type: Integer
	  - name: duration
	    type: Integer
	  - name: fee
	    type: Integer

Award notification. It is produced when a publisher is awarded.

	Award:
	  - name: from
	    type: Hash160
	  - name: magnet
	    type: ByteArray
	  - name: amount
	    type: Integer

Abuse notification. It is produced when an abuse report is filed.

	Abuse:
	  - name: reporter
	    type: Hash160
	  - name: magnet
	    type: ByteArray
	  - name: tag
	    type: ByteArray
*/
package content
